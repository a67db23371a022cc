// Package achievement holds the static achievement rule set and the evaluator
// that turns cumulative user statistics into unlock events.
package achievement

import (
	_ "embed"
	"fmt"
	"math"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

//go:embed achievements.yaml
var rulesRawData []byte

type Category string

const (
	CategoryCritic       Category = "critic"
	CategoryExplorer     Category = "explorer"
	CategoryPhotographer Category = "photographer"
	CategorySocial       Category = "social"
	CategoryContributor  Category = "contributor"
)

type StatKind string

const (
	StatReviewsCount   StatKind = "reviews_count"
	StatCuisinesTried  StatKind = "cuisines_tried"
	StatPhotosUploaded StatKind = "photos_uploaded"
	StatTrustScore     StatKind = "trust_score"
	StatDishesAdded    StatKind = "dishes_added"
	StatFollowersCount StatKind = "followers_count"
)

// Stats is a snapshot of a user's cumulative counters.
type Stats struct {
	ReviewsCount   int     `json:"reviews_count"`
	CuisinesTried  int     `json:"cuisines_tried"`
	PhotosUploaded int     `json:"photos_uploaded"`
	TrustScore     float64 `json:"trust_score"`
	DishesAdded    int     `json:"dishes_added"`
	FollowersCount int     `json:"followers_count"`
}

// trustScoreEpsilon absorbs float error in the ×10 scaling so that 4.5 maps
// to 45 while 4.49 maps to 44.
const trustScoreEpsilon = 1e-9

// ScaledTrustScore converts a real-valued trust score to the integer scale
// used by trust_score targets.
func ScaledTrustScore(score float64) int {
	return int(math.Floor(score*10 + trustScoreEpsilon))
}

// statExtractors maps each stat kind to the counter it reads. A new kind needs
// one entry here and one in the rule file.
var statExtractors = map[StatKind]func(Stats) int{
	StatReviewsCount:   func(s Stats) int { return s.ReviewsCount },
	StatCuisinesTried:  func(s Stats) int { return s.CuisinesTried },
	StatPhotosUploaded: func(s Stats) int { return s.PhotosUploaded },
	StatTrustScore:     func(s Stats) int { return ScaledTrustScore(s.TrustScore) },
	StatDishesAdded:    func(s Stats) int { return s.DishesAdded },
	StatFollowersCount: func(s Stats) int { return s.FollowersCount },
}

// Current returns the counter selected by kind. Unknown kinds read as 0.
func (s Stats) Current(kind StatKind) int {
	extract, ok := statExtractors[kind]
	if !ok {
		return 0
	}
	return extract(s)
}

type Condition struct {
	Stat   StatKind `yaml:"stat" json:"stat"`
	Target int      `yaml:"target" json:"target"`
}

// Validate enforces target > 0. Unknown stats are accepted and simply never
// satisfied.
func (c Condition) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Target, validation.Required, validation.Min(1)),
	)
}

type Reward struct {
	Points int    `yaml:"points" json:"points"`
	Badge  string `yaml:"badge,omitempty" json:"badge,omitempty"`
}

// Definition is one immutable entry of the rule set.
type Definition struct {
	ID          string    `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description" json:"description"`
	Icon        string    `yaml:"icon" json:"icon"`
	Category    Category  `yaml:"category" json:"category"`
	Condition   Condition `yaml:"condition" json:"condition"`
	Reward      *Reward   `yaml:"reward,omitempty" json:"reward,omitempty"`
}

func (d Definition) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ID, validation.Required),
		validation.Field(&d.Name, validation.Required),
		validation.Field(&d.Category, validation.Required, validation.In(
			CategoryCritic, CategoryExplorer, CategoryPhotographer, CategorySocial, CategoryContributor,
		)),
		validation.Field(&d.Condition),
	)
}

// Progress returns min(100, round(100*current/target)).
func (d Definition) Progress(current int) int {
	if d.Condition.Target <= 0 || current <= 0 {
		return 0
	}
	p := int(math.Round(100 * float64(current) / float64(d.Condition.Target)))
	if p > 100 {
		return 100
	}
	return p
}

// RuleSet is an ordered, read-only list of definitions.
type RuleSet struct {
	defs []Definition
	byID map[string]int
}

type rulesFile struct {
	Achievements []Definition `yaml:"achievements"`
}

// ParseRuleSet decodes and validates a YAML rule file.
func ParseRuleSet(data []byte) (*RuleSet, error) {
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("achievement: parse rules: %w", err)
	}
	return NewRuleSet(f.Achievements)
}

// NewRuleSet validates defs and rejects duplicate ids.
func NewRuleSet(defs []Definition) (*RuleSet, error) {
	rs := &RuleSet{
		defs: make([]Definition, 0, len(defs)),
		byID: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("achievement %q: %w", d.ID, err)
		}
		if _, dup := rs.byID[d.ID]; dup {
			return nil, fmt.Errorf("achievement %q: duplicate id", d.ID)
		}
		rs.byID[d.ID] = len(rs.defs)
		rs.defs = append(rs.defs, d)
	}
	return rs, nil
}

// All returns a copy of the definitions in rule-file order.
func (rs *RuleSet) All() []Definition {
	out := make([]Definition, len(rs.defs))
	copy(out, rs.defs)
	return out
}

func (rs *RuleSet) Get(id string) (Definition, bool) {
	i, ok := rs.byID[id]
	if !ok {
		return Definition{}, false
	}
	return rs.defs[i], true
}

var (
	defaultOnce  sync.Once
	defaultRules *RuleSet
	defaultErr   error
)

// DefaultRuleSet returns the embedded rule set, parsed once per process.
func DefaultRuleSet() (*RuleSet, error) {
	defaultOnce.Do(func() {
		defaultRules, defaultErr = ParseRuleSet(rulesRawData)
	})
	return defaultRules, defaultErr
}
