package usecase

import (
	"context"
	"sync"

	"ecomovex-service/internal/domain/entity"
)

// Validator is one read-only sub-agent run over the post-mutation plan.
// Implementations never modify the plan they receive.
type Validator interface {
	// Agent returns the agent tag used in findings
	Agent() string

	// Validate inspects the plan and returns the agent's report
	Validate(ctx context.Context, plan *entity.Plan) entity.AgentReport
}

// RunValidators fans the validators out concurrently and collects their
// reports in registration order. A collaborator failure inside one validator
// never cancels its siblings.
func RunValidators(ctx context.Context, plan *entity.Plan, validators []Validator) []entity.AgentReport {
	reports := make([]entity.AgentReport, len(validators))

	var wg sync.WaitGroup
	for i, v := range validators {
		wg.Add(1)
		go func(i int, v Validator) {
			defer wg.Done()
			reports[i] = v.Validate(ctx, plan)
		}(i, v)
	}
	wg.Wait()

	return reports
}
