package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/dynmotion/internal/sim"
)

type ExportData struct {
	RunInfo
	Steps   int                `json:"steps"`
	Columns []string           `json:"columns"`
	Times   []float64          `json:"times"`
	Samples [][]float64        `json:"samples"`
	Phases  []string           `json:"phases"`
	Metrics map[string]float64 `json:"metrics"`
}

func exportData(info RunInfo, result *sim.Result) ExportData {
	data := ExportData{
		RunInfo: info,
		Steps:   result.Ticks,
		Columns: result.Columns,
		Times:   result.Times,
		Samples: make([][]float64, len(result.Samples)),
		Phases:  make([]string, len(result.Phases)),
		Metrics: result.Metrics,
	}
	for i, s := range result.Samples {
		data.Samples[i] = s
	}
	for i, p := range result.Phases {
		data.Phases[i] = p.String()
	}
	return data
}

// WriteJSON writes the whole run as one indented JSON document.
func WriteJSON(w io.Writer, info RunInfo, result *sim.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData(info, result))
}

func ExportJSON(path string, info RunInfo, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, info, result)
}
