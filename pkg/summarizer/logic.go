package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.temporal.io/sdk/temporal"

	"github.com/gistloop/gistloop/pkg/agent"
)

// ErrTypeNoSummaries is the error type attached when a run produces no
// candidate at all.
const ErrTypeNoSummaries = "NoSummaries"

// Generator produces one summary candidate. A nil result with a nil error
// means the model returned nothing usable this attempt.
type Generator interface {
	Summarize(ctx context.Context, in *SummaryInput) (*SummaryOutput, error)
}

// Grader reviews one candidate. A nil result with a nil error means the
// judge produced nothing usable; the loop ends quietly in that case.
type Grader interface {
	Grade(ctx context.Context, gc *GradeContext) (*SummaryGrade, error)
}

// AgentGenerator runs a generator prompt through the agent runner.
type AgentGenerator struct {
	Runner *agent.Runner
	Prompt *agent.Prompt
}

func (g *AgentGenerator) Summarize(ctx context.Context, in *SummaryInput) (*SummaryOutput, error) {
	out, _, err := agent.Run[SummaryOutput](ctx, g.Runner, g.Prompt, SummaryMessages(in))
	return out, err
}

// AgentGrader runs a judge prompt through the agent runner.
type AgentGrader struct {
	Runner *agent.Runner
	Prompt *agent.Prompt
}

func (g *AgentGrader) Grade(ctx context.Context, gc *GradeContext) (*SummaryGrade, error) {
	out, _, err := agent.Run[SummaryGrade](ctx, g.Runner, g.Prompt, GradeMessages(gc))
	return out, err
}

// Run executes the refinement loop for the input's summary type using the
// runner's configured agents.
func Run(ctx context.Context, runner *agent.Runner, in *SummaryInput) (*InternalSummaryResult, error) {
	genPrompt, judgePrompt := AgentsFor(in.SummaryType)
	gen := &AgentGenerator{Runner: runner, Prompt: genPrompt}
	grader := &AgentGrader{Runner: runner, Prompt: judgePrompt}
	return SummarizeOneType(ctx, in, gen, grader)
}

// SummarizeOneType runs the generate-grade refinement loop.
//
// Each iteration generates a candidate and, unless only one iteration was
// requested, asks the judge to grade it. The loop stops early when a grade
// reaches 8, or exceeds 6 with no missing entities. A failed generation
// consumes its iteration; a judge that returns nothing ends the loop with
// the candidates collected so far. The best candidate is the one with the
// highest grade, later iterations winning ties.
func SummarizeOneType(ctx context.Context, in *SummaryInput, gen Generator, grader Grader) (*InternalSummaryResult, error) {
	tracer := otel.Tracer("gistloop/summarizer")

	iterations := in.Iterations
	if iterations == 0 {
		iterations = 1
	}

	// Work on a copy so feedback propagation never mutates the caller's input.
	current := *in

	var (
		summaries []SummaryOutput
		grades    []SummaryGrade
	)

	ctx, loopSpan := tracer.Start(ctx, fmt.Sprintf("summarize %s loop", in.SummaryType))
	defer loopSpan.End()

	for i := 1; i <= iterations; i++ {
		err := func() error {
			iterCtx, span := tracer.Start(ctx, fmt.Sprintf("Iteration %d", i))
			defer span.End()
			span.SetAttributes(
				attribute.Int("iteration", i),
				attribute.String("grades", gradeList(grades)),
			)

			slog.Info("Running summary iteration", "iteration", i, "grades", gradeList(grades))
			summary, err := gen.Summarize(iterCtx, &current)
			if err != nil {
				return err
			}
			if summary == nil {
				slog.Error("No summary generated, trying again")
				return nil
			}
			summaries = append(summaries, *summary)

			if iterations == 1 {
				return errLoopDone
			}

			slog.Info("Grading summary")
			gradeCtx := &GradeContext{SummaryOutput: *summary, OriginalText: current.Content}
			grade, err := grader.Grade(iterCtx, gradeCtx)
			if err != nil {
				return err
			}
			if grade == nil {
				return errLoopDone
			}
			grades = append(grades, *grade)

			if grade.Grade >= 8 || (len(grade.MissingEntities) == 0 && grade.Grade > 6) {
				return errLoopDone
			}

			current.Feedbacks = grade.Feedbacks
			return nil
		}()
		if err == errLoopDone {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	if len(summaries) == 0 {
		return nil, temporal.NewNonRetryableApplicationError("no summaries generated", ErrTypeNoSummaries, nil)
	}

	best := 0
	if len(grades) > 0 {
		for i := range grades {
			if grades[i].Grade >= grades[best].Grade {
				best = i
			}
		}
	} else {
		best = len(summaries) - 1
	}

	return &InternalSummaryResult{
		Summary:     summaries[best],
		Grades:      grades,
		Summaries:   summaries,
		SummaryType: in.SummaryType,
	}, nil
}

// errLoopDone is a sentinel used to break out of an iteration closure.
var errLoopDone = fmt.Errorf("loop done")

func gradeList(grades []SummaryGrade) string {
	parts := make([]string, len(grades))
	for i, g := range grades {
		parts[i] = fmt.Sprintf("%d", g.Grade)
	}
	return strings.Join(parts, ",")
}
