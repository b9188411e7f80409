package checker

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// CheckResult is the per-program entry of the report.
type CheckResult struct {
	Name         string `json:"name"`
	Passed       bool   `json:"passed"`
	Output       string `json:"output"`
	Instructions int    `json:"instructions"` // program size after a successful assemble
	Status       string `json:"status,omitempty"`
}

type Report struct {
	Name    string        `json:"name"`
	Checks  []CheckResult `json:"checks"`
	Passed  int           `json:"passed"`
	Failed  int           `json:"failed"`
}

func CreateReport(name string) *Report {
	return &Report{Name: name, Checks: []CheckResult{}}
}

func (r *Report) AddCheck(check CheckResult) {
	if check.Passed {
		check.Status = "passed"
		r.Passed++
	} else {
		check.Status = "failed"
		r.Failed++
	}
	r.Checks = append(r.Checks, check)
}

// Save writes the report to <dir>/results.json, creating dir if needed.
func (r *Report) Save(dir string) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "results.json"), b, 0644)
}

func (c *CheckResult) OutputPrintLn(str string) {
	c.Output += str + "\n"
}
