// Package rst compiles the plan collection into a tree of Runestone
// RST documents: an index, one integrated example per group and one
// document per plan or test page.
package rst

import (
	"context"

	"go.uber.org/zap"

	"github.com/purpose-first/plans-as-code/internal/pkg/model"
	"github.com/purpose-first/plans-as-code/internal/pkg/naming"
)

// IndexFile is the name of the tutorial entry document.
const IndexFile = "index.rst"

// ContextSource supplies a contextual example for a group that has no
// cached one, typically a live synthesis call. It may be nil, then
// uncached groups degrade to the non-contextual rendering.
type ContextSource interface {
	ContextFor(ctx context.Context, group string, groupPlans model.Plans) (*model.Context, error)
}

type Dependencies interface {
	Logger() *zap.SugaredLogger
}

// Generator renders the document tree. Given the same plans and cached
// examples, and no context source, the output is deterministic.
type Generator struct {
	logger *zap.SugaredLogger
	source ContextSource
}

func NewGenerator(d Dependencies, source ContextSource) *Generator {
	return &Generator{logger: d.Logger(), source: source}
}

// Generate renders all documents into a filename to content mapping.
// Every cross-reference emitted in the index and the integrated
// examples names a file present in the result.
func (g *Generator) Generate(ctx context.Context, plans model.Plans, cached model.ContextualExamples) (map[string]string, error) {
	files := make(map[string]string)

	groups, buckets := GroupsByLegacyField(plans)
	files[IndexFile] = generateIndex(plans, groups)

	for _, group := range groups {
		groupPlans := buckets[group]
		files[naming.IntegratedFile(group)] = generateIntegrated(group, groupPlans, g.contextFor(ctx, group, groupPlans, cached))
	}

	for _, plan := range plans {
		if plan.IsTest {
			files[naming.PlanFile(plan.Name)] = g.generateTestPage(plan)
		} else {
			files[naming.PlanFile(plan.Name)] = g.generatePlanPage(plan)
		}
	}

	return files, nil
}

// contextFor prefers the cached example, then the live source.
// A source failure falls back to the non-contextual rendering.
func (g *Generator) contextFor(ctx context.Context, group string, groupPlans model.Plans, cached model.ContextualExamples) *model.Context {
	if example, found := cached[group]; found && example != nil && example.Context != nil {
		return example.Context
	}
	if g.source == nil {
		return nil
	}
	result, err := g.source.ContextFor(ctx, group, groupPlans)
	if err != nil {
		g.logger.Warnf(`cannot synthesize contextual example for group "%s": %s`, group, err)
		return nil
	}
	return result
}
