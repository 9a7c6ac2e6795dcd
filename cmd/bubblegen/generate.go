package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"constituency-bubbles/internal/boundary"
	"constituency-bubbles/internal/coverage"
	"constituency-bubbles/internal/logging"
	"constituency-bubbles/internal/metrics"
	"constituency-bubbles/internal/output"
	"constituency-bubbles/internal/runner"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compute circles for every boundary in a local shapefile or GeoJSON file",
		RunE:  runGenerate,
	}
	fl := cmd.Flags()
	fl.String("input", "", "path to the boundary file (.shp or .geojson)")
	fl.String("format", "shapefile", "input format: shapefile or geojson")
	fl.StringSlice("id-field", []string{"Constituen"}, "shapefile attribute field(s) forming the constituency identifier")
	fl.String("id-property", "name", "GeoJSON property holding the constituency identifier")
	fl.String("source-crs", boundary.BritishNationalGrid, "CRS tag of the input file (EPSG:27700, EPSG:4326 or a raw proj4 string)")
	fl.String("working-crs", boundary.BritishNationalGrid, "meter-unit CRS circles are computed in")
	fl.String("out", "output/constituencies", "output directory")
	fl.String("region", "", "process only the boundary with this exact identifier")
	fl.Int("workers", 0, "concurrent boundaries (0 = number of CPUs)")
	fl.Int("max-circles", 200, "circle budget per boundary")
	fl.Float64("unit-km", 1, "radius quantization step in kilometres")
	fl.Float64("min-gain", 0.0005, "fraction of boundary area below which a candidate is non-contributing")
	fl.Float64("coverage-threshold", 1, "coverage fraction at which a boundary counts as fully covered")
	fl.Int64("seed", 1, "candidate sampler seed")
	fl.Duration("timeout", 0, "per-boundary wall-clock ceiling (0 = none)")
	fl.String("metrics-addr", "", "serve prometheus metrics on this address during the run")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	v.SetEnvPrefix("BUBBLEGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	log := logging.Setup()

	workingCRS := v.GetString("working-crs")
	if err := boundary.CheckWorkingCRS(workingCRS); err != nil {
		return err
	}

	bs, err := loadBoundaries(v)
	if err != nil {
		return err
	}
	if sourceCRS := v.GetString("source-crs"); !strings.EqualFold(sourceCRS, workingCRS) {
		bs, err = boundary.Reproject(bs, sourceCRS, workingCRS)
		if err != nil {
			return err
		}
	}
	bs = boundary.FilterByID(bs, v.GetString("region"))
	if len(bs) == 0 {
		return fmt.Errorf("no boundaries to process")
	}
	log.Info("boundaries loaded", "count", len(bs))

	if addr := v.GetString("metrics-addr"); addr != "" {
		go func() {
			if err := metrics.Serve(addr); err != nil {
				log.Error("metrics server stopped", "error", err)
			}
		}()
	}

	params := coverage.DefaultParams().
		WithMaxCircles(v.GetInt("max-circles")).
		WithUnitDistance(v.GetFloat64("unit-km") * 1000).
		WithThresholds(v.GetFloat64("min-gain"), v.GetFloat64("coverage-threshold")).
		WithSeed(v.GetInt64("seed"))
	if err := params.Validate(); err != nil {
		return err
	}

	outcomes := runner.Run(cmd.Context(), log, bs, runner.Options{
		Params:  params,
		Workers: v.GetInt("workers"),
		Timeout: v.GetDuration("timeout"),
	})

	toWGS84, err := boundary.Transformer(workingCRS, boundary.WGS84)
	if err != nil {
		return err
	}
	w, err := output.NewWriter(v.GetString("out"), toWGS84)
	if err != nil {
		return err
	}
	for _, o := range outcomes {
		if o.Err != nil {
			err = w.WriteFailure(o.ID, o.Err)
		} else {
			err = w.WriteResult(o.ID, *o.Result)
		}
		if err != nil {
			w.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	s := runner.Summarize(outcomes)
	log.Info("batch complete",
		"completed", s.Completed,
		"failed", s.Failed,
		"zero_circle_boundaries", s.ZeroCircles,
		"by_reason", s.ByReason)
	if s.Completed == 0 {
		return fmt.Errorf("no boundary produced a result")
	}
	return nil
}

func loadBoundaries(v *viper.Viper) ([]boundary.Boundary, error) {
	input := v.GetString("input")
	switch strings.ToLower(v.GetString("format")) {
	case "shapefile", "shp":
		return boundary.LoadShapefile(input, v.GetStringSlice("id-field"))
	case "geojson":
		return boundary.LoadGeoJSON(input, v.GetString("id-property"))
	default:
		return nil, fmt.Errorf("unknown input format %q", v.GetString("format"))
	}
}
