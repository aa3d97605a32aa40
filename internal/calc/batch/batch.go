package batch

import (
	"fmt"

	windzone "Sitewise/internal/calc/windzone"
)

type SiteBatchInput struct {
	Items []windzone.Input `json:"items"`
}

type SiteBatchResult struct {
	Results []windzone.Result `json:"results"`
	// SEDCount flags how many sites need a qualified engineer.
	SEDCount int `json:"sed_count"`
}

func ClassifySites(in SiteBatchInput) (SiteBatchResult, error) {
	if len(in.Items) == 0 {
		return SiteBatchResult{}, fmt.Errorf("no items")
	}
	out := SiteBatchResult{Results: make([]windzone.Result, 0, len(in.Items))}
	for _, item := range in.Items {
		res := windzone.Classify(item)
		if res.RequiresEngineer {
			out.SEDCount++
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
