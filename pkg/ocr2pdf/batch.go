package ocr2pdf

import (
	"path/filepath"
	"strings"
)

// Outcome is the terminal state of one batch item.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// ItemResult records what happened to one input file.
type ItemResult struct {
	Input   string
	Outcome Outcome
	Output  string // written output path, when any
	Valid   bool   // validate-only: whether the form is fillable
	Err     error  // recorded cause for OutcomeFailed
}

// BatchReport aggregates per-item outcomes. Failures are isolated per
// file, so a partially successful batch is distinguishable from a total
// one by its counts.
type BatchReport struct {
	Items []ItemResult
}

// Succeeded counts items with OutcomeSuccess.
func (r BatchReport) Succeeded() int { return r.count(OutcomeSuccess) }

// Failed counts items with OutcomeFailed.
func (r BatchReport) Failed() int { return r.count(OutcomeFailed) }

// Skipped counts items with OutcomeSkipped.
func (r BatchReport) Skipped() int { return r.count(OutcomeSkipped) }

func (r BatchReport) count(o Outcome) int {
	n := 0
	for _, item := range r.Items {
		if item.Outcome == o {
			n++
		}
	}
	return n
}

// ProcessBatch runs the form workflow over inputs, writing outputs into
// outDir (or only validating when validateOnly is set). One failing file
// advances to the next input; the queue never halts early. The report
// is stateless: nothing persists between runs.
func (c *Converter) ProcessBatch(inputs []string, outDir string, validateOnly bool) BatchReport {
	var report BatchReport

	for _, input := range inputs {
		item := ItemResult{Input: input}

		if strings.ToLower(filepath.Ext(input)) != ".pdf" {
			item.Outcome = OutcomeSkipped
			c.logger.Info().Str("input", input).Msg("skipping non-PDF input")
			report.Items = append(report.Items, item)
			continue
		}

		if validateOnly {
			valid, err := c.ValidateForm(input)
			if err != nil {
				item.Outcome = OutcomeFailed
				item.Err = err
				c.logger.Error().Err(err).Str("input", input).Msg("validation failed")
			} else {
				item.Outcome = OutcomeSuccess
				item.Valid = valid
			}
			report.Items = append(report.Items, item)
			continue
		}

		output := OutputName(input, outDir)
		if err := c.ProcessForm(input, output); err != nil {
			item.Outcome = OutcomeFailed
			item.Err = err
			c.logger.Error().Err(err).Str("input", input).Msg("processing failed")
		} else {
			item.Outcome = OutcomeSuccess
			item.Output = output
		}
		report.Items = append(report.Items, item)
	}

	return report
}
