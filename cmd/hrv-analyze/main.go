// hrv-analyze runs the rhythm and HRV analysis over a CSV file of detected
// beats and prints the report.
//
// The CSV has a header row and the columns
//
//	time,onset,offset,q,r,baseline,pq
//
// with times in seconds.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/chrissnell/cardiorhythm/internal/analysis"
	"github.com/chrissnell/cardiorhythm/internal/log"
	"github.com/chrissnell/cardiorhythm/pkg/config"
	"github.com/chrissnell/cardiorhythm/pkg/ecg"
	"github.com/chrissnell/cardiorhythm/pkg/responseformat"
)

var columns = []string{"time", "onset", "offset", "q", "r", "baseline", "pq"}

func main() {
	var (
		cfgFile  = flag.String("config", "", "Optional YAML configuration file (analysis section is used)")
		input    = flag.String("input", "-", "CSV file of beats, or - for stdin")
		format   = flag.String("format", responseformat.FormatJSON, "Output format: json or msgpack")
		rate     = flag.Float64("sampling-rate", 0, "Override analysis.sampling_rate (Hz)")
		resample = flag.Float64("resampling-rate", 0, "Override analysis.resampling_rate (Hz)")
		debug    = flag.Bool("debug", false, "Turn on debugging output")
	)
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	opts := options{
		cfgFile:  *cfgFile,
		input:    *input,
		format:   *format,
		rate:     *rate,
		resample: *resample,
	}
	if err := run(opts, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}

type options struct {
	cfgFile  string
	input    string
	format   string
	rate     float64
	resample float64
}

// run reads the beats named by opts, analyzes them and writes the report to out
func run(opts options, out io.Writer) error {
	if opts.format != responseformat.FormatJSON && opts.format != responseformat.FormatMsgPack {
		return fmt.Errorf("unsupported output format %q", opts.format)
	}

	cfg := &config.ConfigData{}
	if opts.cfgFile != "" {
		var err error
		cfg, err = config.NewYAMLProvider(opts.cfgFile).LoadConfig()
		if err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	if opts.rate > 0 {
		cfg.Analysis.SamplingRate = opts.rate
	}
	if opts.resample > 0 {
		cfg.Analysis.ResamplingRate = opts.resample
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var r io.Reader = os.Stdin
	if opts.input != "-" {
		f, err := os.Open(opts.input)
		if err != nil {
			return fmt.Errorf("error opening input: %w", err)
		}
		defer f.Close()
		r = f
	}

	beats, err := readBeats(r)
	if err != nil {
		return fmt.Errorf("error reading beats: %w", err)
	}
	log.Debugf("read %d beats", len(beats))

	analyzer, err := analysis.New(cfg.Analysis, log.GetSugaredLogger())
	if err != nil {
		return err
	}

	report, err := analyzer.Analyze(beats)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if len(report.Artifacts) > 0 {
		log.Warnf("%d intervals look like detection artifacts: %v", len(report.Artifacts), report.Artifacts)
	}

	if err := responseformat.Encode(out, opts.format, report); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}

// readBeats parses the beat CSV. Columns are matched by header name, so
// their order is free; pq may be omitted.
func readBeats(r io.Reader) ([]ecg.Heartbeat, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range columns[:len(columns)-1] {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var beats []ecg.Heartbeat
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		values := make(map[string]float64, len(columns))
		for _, name := range columns {
			i, ok := index[name]
			if !ok {
				continue
			}
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %s: %w", line, name, err)
			}
			values[name] = v
		}

		beat := ecg.Heartbeat{
			Time: values["time"],
			PQ:   values["pq"],
			QRS: ecg.QRSComplex{
				Onset:    values["onset"],
				Offset:   values["offset"],
				Q:        values["q"],
				R:        values["r"],
				Baseline: values["baseline"],
			},
		}
		if n := len(beats); n > 0 {
			beat.QRS.RR = beat.Time - beats[n-1].Time
		}
		beats = append(beats, beat)
	}

	return beats, nil
}
