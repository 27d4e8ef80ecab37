package compliance

import (
	"time"

	"github.com/google/uuid"

	"github.com/joshsymonds/tokubetsu/internal/axe"
	"github.com/joshsymonds/tokubetsu/internal/models"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

// Scorer computes WCAG compliance reports from scan results.
type Scorer struct {
	catalog *Catalog
	logger  logger.Logger
	now     func() time.Time
	newID   func() string
}

// NewScorer creates a scorer over catalog. A nil catalog selects DefaultCatalog.
func NewScorer(catalog *Catalog) *Scorer {
	return NewScorerWithLogger(catalog, logger.GetGlobalLogger())
}

// NewScorerWithLogger creates a scorer with a custom logger.
func NewScorerWithLogger(catalog *Catalog, log logger.Logger) *Scorer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Scorer{
		catalog: catalog,
		logger:  log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// tally counts checked nodes for one level or principle.
type tally struct {
	passes     int
	violations int
}

// score returns passes as a percentage of checked nodes, or fallback when
// nothing was checked.
func (t tally) score(fallback float64) float64 {
	total := t.passes + t.violations
	if total == 0 {
		return fallback
	}
	return float64(t.passes) / float64(total) * 100
}

// Score builds a compliance report for the page at url.
//
// Each node counts once toward the level and the principle of its rule.
// Level scores are 0 when no rule of that level was checked; principle scores
// are 100. The overall score is the mean of the four principle scores.
func (s *Scorer) Score(url string, results *axe.Results) *models.ComplianceReport {
	if results == nil {
		results = &axe.Results{}
	}

	levels := map[string]*tally{
		models.LevelA:   {},
		models.LevelAA:  {},
		models.LevelAAA: {},
	}
	principles := map[string]*tally{
		models.PrinciplePerceivable:    {},
		models.PrincipleOperable:       {},
		models.PrincipleUnderstandable: {},
		models.PrincipleRobust:         {},
	}

	count := func(rules []axe.Rule, pass bool) {
		for _, r := range rules {
			entry, ok := s.catalog.Rule(r.ID)
			if !ok {
				s.logger.Debug("Rule not in catalog", "rule", r.ID)
				continue
			}

			n := len(r.Nodes)
			if n == 0 {
				n = 1
			}
			for _, t := range []*tally{levels[entry.Level], principles[entry.Principle]} {
				if t == nil {
					continue
				}
				if pass {
					t.passes += n
				} else {
					t.violations += n
				}
			}
		}
	}
	count(results.Passes, true)
	count(results.Violations, false)

	report := &models.ComplianceReport{
		ID:                  s.newID(),
		URL:                 url,
		GeneratedAt:         s.now(),
		Violations:          axe.ToViolations(results, s.catalog),
		LevelAScore:         levels[models.LevelA].score(0),
		LevelAAScore:        levels[models.LevelAA].score(0),
		LevelAAAScore:       levels[models.LevelAAA].score(0),
		PerceivableScore:    principles[models.PrinciplePerceivable].score(100),
		OperableScore:       principles[models.PrincipleOperable].score(100),
		UnderstandableScore: principles[models.PrincipleUnderstandable].score(100),
		RobustScore:         principles[models.PrincipleRobust].score(100),
		TotalPasses:         axe.NodeCount(results.Passes),
	}

	report.OverallScore = (report.PerceivableScore + report.OperableScore +
		report.UnderstandableScore + report.RobustScore) / 4

	s.logger.Info("Compliance scored",
		"url", url,
		"overall", report.OverallScore,
		"violations", len(report.Violations),
		"passes", report.TotalPasses)

	return report
}
