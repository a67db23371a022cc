// Package recommendation ranks catalog items against a user's taste profile.
package recommendation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pageza/tastemap/backend/internal/filters"
	"github.com/pageza/tastemap/backend/internal/models"
)

type Type string

const (
	TypeDish       Type = "dish"
	TypeRestaurant Type = "restaurant"
	TypeCuisine    Type = "cuisine"
)

// Recommendation is computed per request and never persisted.
type Recommendation struct {
	Type   Type     `json:"type"`
	ItemID string   `json:"item_id"`
	Score  int      `json:"score"`
	Reason string   `json:"reason"`
	Tags   []string `json:"tags"`
}

const (
	tagInBudget = "в бюджете"
	tagSpicy    = "острое"
	tagNearby   = "рядом"
	tagNew      = "новая кухня"
)

// Weights are the score contributions of each signal. Scores are clamped to
// [0,100] after summing.
type Weights struct {
	CuisineMatch       float64
	ExtraCuisineMatch  float64
	ExtraCuisineCap    float64
	IngredientMatch    float64
	IngredientCap      float64
	PriceFit           float64
	PriceMiss          float64
	SpiceFit           float64
	SpiceTooHot        float64
	RatingMax          float64
	NearbyBonus        float64
	NearbyKm           float64
	CuisineSuggestBase float64
	CuisineSuggestStep float64
	CuisineSuggestCap  float64
}

func DefaultWeights() Weights {
	return Weights{
		CuisineMatch:       40,
		ExtraCuisineMatch:  5,
		ExtraCuisineCap:    10,
		IngredientMatch:    15,
		IngredientCap:      30,
		PriceFit:           15,
		PriceMiss:          -10,
		SpiceFit:           10,
		SpiceTooHot:        -15,
		RatingMax:          5,
		NearbyBonus:        5,
		NearbyKm:           1,
		CuisineSuggestBase: 20,
		CuisineSuggestStep: 10,
		CuisineSuggestCap:  60,
	}
}

type Ranker struct {
	w Weights
}

func NewRanker(w Weights) *Ranker {
	return &Ranker{w: w}
}

// Rank scores every candidate and returns them best first. Dishes containing an
// excluded ingredient are dropped outright, as is any candidate without a
// concrete match to name in its reason or whose score clamps to 0. Equal
// scores keep input order: dishes, then restaurants, then cuisine suggestions.
func (r *Ranker) Rank(profile *models.TasteProfile, dishes []models.Dish, restaurants []models.Restaurant) []Recommendation {
	if profile == nil {
		return nil
	}

	allowed := make([]models.Dish, 0, len(dishes))
	for _, d := range dishes {
		if _, excluded := filters.MatchTerm(d.Ingredients, profile.ExcludedIngredients); excluded {
			continue
		}
		allowed = append(allowed, d)
	}

	out := make([]Recommendation, 0, len(allowed)+len(restaurants))
	for i := range allowed {
		if rec, ok := r.scoreDish(profile, &allowed[i]); ok {
			out = append(out, rec)
		}
	}
	for i := range restaurants {
		if rec, ok := r.scoreRestaurant(profile, &restaurants[i]); ok {
			out = append(out, rec)
		}
	}
	out = append(out, r.suggestCuisines(profile, allowed)...)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func (r *Ranker) scoreDish(p *models.TasteProfile, d *models.Dish) (Recommendation, bool) {
	var (
		score   float64
		reasons []string
		tags    []string
	)

	if d.Cuisine != "" && filters.ContainsFold(p.FavoriteCuisines, d.Cuisine) {
		score += r.w.CuisineMatch
		reasons = append(reasons, fmt.Sprintf("Ваша любимая кухня: %s", d.Cuisine))
		tags = append(tags, d.Cuisine)
	}

	matched := filters.MatchAllTerms(d.Ingredients, p.FavoriteIngredients)
	if len(matched) > 0 {
		score += math.Min(r.w.IngredientMatch*float64(len(matched)), r.w.IngredientCap)
		reasons = append(reasons, fmt.Sprintf("Любимые ингредиенты: %s", strings.Join(matched, ", ")))
		tags = append(tags, matched...)
	}

	if len(reasons) == 0 {
		return Recommendation{}, false
	}

	if d.Price != nil {
		if p.PriceRange.Contains(*d.Price) {
			score += r.w.PriceFit
			tags = append(tags, tagInBudget)
		} else {
			score += r.w.PriceMiss
		}
	}

	score += r.spiceAdjustment(p.SpicyLevel, d.SpicyLevel)
	if rank, ok := d.SpicyLevel.Rank(); ok && rank >= 3 {
		tags = append(tags, tagSpicy)
	}

	score += r.ratingBonus(d.AverageRating)

	return finish(TypeDish, d.ID.String(), score, reasons, tags)
}

func (r *Ranker) scoreRestaurant(p *models.TasteProfile, rest *models.Restaurant) (Recommendation, bool) {
	var matched []string
	for _, c := range rest.Cuisines {
		if filters.ContainsFold(p.FavoriteCuisines, c) {
			matched = append(matched, c)
		}
	}
	if len(matched) == 0 {
		return Recommendation{}, false
	}

	score := r.w.CuisineMatch
	score += math.Min(r.w.ExtraCuisineMatch*float64(len(matched)-1), r.w.ExtraCuisineCap)
	reasons := []string{fmt.Sprintf("Готовят вашу любимую кухню: %s", strings.Join(matched, ", "))}
	tags := append([]string{}, matched...)

	if rest.AverageCheck != nil {
		if p.PriceRange.Contains(*rest.AverageCheck) {
			score += r.w.PriceFit
			tags = append(tags, tagInBudget)
		} else {
			score += r.w.PriceMiss
		}
	}

	if rest.AverageRating != nil {
		score += r.ratingBonus(*rest.AverageRating)
	}

	if rest.Distance != nil && *rest.Distance <= r.w.NearbyKm {
		score += r.w.NearbyBonus
		tags = append(tags, tagNearby)
	}

	return finish(TypeRestaurant, rest.ID.String(), score, reasons, tags)
}

// suggestCuisines proposes cuisines outside the favourites whose dishes use
// favourite ingredients, in order of first appearance in the catalog.
func (r *Ranker) suggestCuisines(p *models.TasteProfile, dishes []models.Dish) []Recommendation {
	type bucket struct {
		name        string
		dishes      int
		ingredients []string
	}
	var order []*bucket
	byKey := make(map[string]*bucket)

	for i := range dishes {
		d := &dishes[i]
		if d.Cuisine == "" || filters.ContainsFold(p.FavoriteCuisines, d.Cuisine) {
			continue
		}
		matched := filters.MatchAllTerms(d.Ingredients, p.FavoriteIngredients)
		if len(matched) == 0 {
			continue
		}
		key := strings.ToLower(d.Cuisine)
		b, ok := byKey[key]
		if !ok {
			b = &bucket{name: d.Cuisine}
			byKey[key] = b
			order = append(order, b)
		}
		b.dishes++
		for _, m := range matched {
			if !filters.ContainsFold(b.ingredients, m) {
				b.ingredients = append(b.ingredients, m)
			}
		}
	}

	out := make([]Recommendation, 0, len(order))
	for _, b := range order {
		score := math.Min(r.w.CuisineSuggestBase+r.w.CuisineSuggestStep*float64(b.dishes), r.w.CuisineSuggestCap)
		reasons := []string{fmt.Sprintf("Попробуйте кухню %s: есть блюда с вашими любимыми ингредиентами (%s)",
			b.name, strings.Join(b.ingredients, ", "))}
		if rec, ok := finish(TypeCuisine, b.name, score, reasons, []string{b.name, tagNew}); ok {
			out = append(out, rec)
		}
	}
	return out
}

// spiceAdjustment rewards dishes within the user's tolerance and penalises
// dishes two or more levels hotter. Unknown levels on either side score 0.
func (r *Ranker) spiceAdjustment(tolerance, heat models.SpicyLevel) float64 {
	tr, ok := tolerance.Rank()
	if !ok {
		return 0
	}
	hr, ok := heat.Rank()
	if !ok {
		return 0
	}
	switch diff := hr - tr; {
	case diff <= 0:
		return r.w.SpiceFit
	case diff == 1:
		return 0
	default:
		return r.w.SpiceTooHot
	}
}

func (r *Ranker) ratingBonus(rating float64) float64 {
	if rating <= 0 {
		return 0
	}
	return math.Min(rating, 5) / 5 * r.w.RatingMax
}

func finish(t Type, id string, score float64, reasons, tags []string) (Recommendation, bool) {
	s := int(math.Round(math.Max(0, math.Min(100, score))))
	if s <= 0 {
		return Recommendation{}, false
	}
	return Recommendation{
		Type:   t,
		ItemID: id,
		Score:  s,
		Reason: strings.Join(reasons, ". "),
		Tags:   dedupe(tags),
	}, true
}

func dedupe(tags []string) []string {
	return []string(models.StringList(tags).Dedupe())
}
