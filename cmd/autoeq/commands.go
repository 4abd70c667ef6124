package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-autoeq/eq/autoeq"
	"github.com/cwbudde/algo-autoeq/eq/curve"
	"github.com/cwbudde/algo-autoeq/eq/fir"
	"github.com/cwbudde/algo-autoeq/eq/format"
	"github.com/cwbudde/algo-autoeq/eq/graphiceq"
	"github.com/cwbudde/algo-autoeq/eq/peq"
	"github.com/cwbudde/algo-autoeq/eq/response"
	"github.com/cwbudde/algo-autoeq/eq/worker"
)

// FitFlags are the tuning and output flags of run and batch.
type FitFlags struct {
	MaxFilters int    `short:"n" help:"Maximum number of filters (0 keeps the configured value)"`
	Format     string `enum:"parametric,graphic" default:"parametric" help:"Output format (${enum})"`
	Wav        string `type:"path" help:"Also write the impulse response as a WAV file"`
	SampleRate int    `default:"48000" help:"Sample rate of the impulse response"`
	Taps       int    `default:"8192" help:"Length of the impulse response in samples"`
	BitDepth   int    `default:"24" help:"Bit depth of the impulse response (16, 24 or 32)"`
}

func (f *FitFlags) config(g *Globals) (autoeq.Config, error) {
	cfg, err := loadConfig(g.Config)
	if err != nil {
		return cfg, err
	}
	if f.MaxFilters > 0 {
		cfg.MaxFilters = f.MaxFilters
	}

	return cfg, nil
}

// write renders set in the selected format.
func (f *FitFlags) write(w io.Writer, set peq.Set) error {
	if f.Format == "graphic" {
		_, err := fmt.Fprintln(w, format.FormatGraphic(graphiceq.Export(set.Filters)))
		return err
	}

	return format.WriteParametric(w, set)
}

// maxDeviationDB is the spectral error above which a WAV export is reported
// as truncated.
const maxDeviationDB = 1.0

func (f *FitFlags) writeWAV(path string, set peq.Set) error {
	ir, err := fir.ImpulseResponse(set, float64(f.SampleRate), f.Taps)
	if err != nil {
		return err
	}

	dev, err := fir.Deviation(ir, set, float64(f.SampleRate), graphiceq.CoarseFreqs())
	if err != nil {
		return err
	}
	entry := log.WithFields(log.Fields{"wav": path, "taps": f.Taps, "deviation_db": dev})
	if dev > maxDeviationDB {
		entry.Warn("impulse response is too short for the profile")
	} else {
		entry.Debug("impulse response rendered")
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fir.WriteWAV(out, ir, f.SampleRate, f.BitDepth); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

// RunCmd fits one measurement.
type RunCmd struct {
	FitFlags

	Output string `short:"o" type:"path" help:"Write the profile to a file instead of stdout"`
	Source string `arg:"" type:"existingfile" help:"Measured response (CSV)"`
	Target string `arg:"" optional:"" type:"existingfile" help:"Target response (CSV); flat when omitted"`
}

func (c *RunCmd) Run(ctx context.Context, g *Globals) error {
	if c.Output == "" {
		return c.run(ctx, g, os.Stdout)
	}

	out, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	if err := c.run(ctx, g, out); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

func (c *RunCmd) run(ctx context.Context, g *Globals, w io.Writer) error {
	cfg, err := c.config(g)
	if err != nil {
		return err
	}
	source, err := readCurve(c.Source)
	if err != nil {
		return err
	}
	target, err := readCurve(c.Target)
	if err != nil {
		return err
	}

	// A canceled fit still yields the best set found so far. It is written
	// out and the cancellation is reported afterwards.
	set, fitErr := autoeq.Run(ctx, source, target, cfg, autoeq.WithLogger(log.WithField("source", c.Source)))
	if fitErr != nil {
		log.WithError(fitErr).WithFields(log.Fields{
			"source":  c.Source,
			"filters": len(set.Filters),
		}).Warn("fit interrupted, writing partial profile")
	}

	if err := c.write(w, set); err != nil {
		return err
	}
	if c.Wav != "" {
		if err := c.writeWAV(c.Wav, set); err != nil {
			return err
		}
	}

	return fitErr
}

// BatchCmd fits several measurements against one target on a worker pool.
type BatchCmd struct {
	FitFlags

	Target  string   `short:"t" type:"existingfile" help:"Target response (CSV); flat when omitted"`
	OutDir  string   `short:"o" type:"existingdir" default:"." help:"Directory for the generated profiles"`
	Workers int      `short:"j" help:"Number of parallel jobs (0 uses all CPUs)"`
	Sources []string `arg:"" type:"existingfile" help:"Measured responses (CSV)"`
}

func (c *BatchCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := c.config(g)
	if err != nil {
		return err
	}
	target, err := readCurve(c.Target)
	if err != nil {
		return err
	}

	pool := worker.NewPool(worker.WithWorkers(c.Workers), worker.WithLogger(log.StandardLogger()))
	defer pool.Close()

	names := make(map[uuid.UUID]string, len(c.Sources))
	var pending []<-chan worker.Response
	for _, path := range c.Sources {
		source, err := readCurve(path)
		if err != nil {
			return err
		}
		req := worker.Request{ID: uuid.New(), Source: source, Target: target, Config: cfg}
		names[req.ID] = path
		pending = append(pending, pool.Submit(ctx, req))
	}

	var failed int
	for _, ch := range pending {
		resp := <-ch
		path := names[resp.ID]
		if resp.Err != nil {
			log.WithError(resp.Err).WithField("source", path).Error("fit failed")
			failed++
			continue
		}
		if err := c.save(path, resp.Set); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d fits failed", failed, len(c.Sources))
	}

	return nil
}

// save writes the profile (and impulse response) of source into OutDir.
func (c *BatchCmd) save(source string, set peq.Set) error {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	path := filepath.Join(c.OutDir, base+".txt")

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.write(out, set); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	log.WithFields(log.Fields{"source": source, "profile": path, "filters": len(set.Filters)}).Info("saved")

	if c.Wav != "" {
		return c.writeWAV(filepath.Join(c.OutDir, base+".wav"), set)
	}

	return nil
}

// GainsCmd prints the response of a profile, optionally applied to a curve.
type GainsCmd struct {
	Curve   string `type:"existingfile" help:"Measured response (CSV) to apply the profile to"`
	Profile string `arg:"" type:"existingfile" help:"ParametricEQ profile"`
}

func (c *GainsCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *GainsCmd) run(w io.Writer) error {
	f, err := os.Open(c.Profile)
	if err != nil {
		return err
	}
	defer f.Close()

	set, err := format.ParseParametric(f)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Profile, err)
	}

	raw, err := readCurve(c.Curve)
	if err != nil {
		return err
	}
	base := curve.Canonicalize(raw)
	points := graphiceq.CoarseFreqs()
	gains := response.CalculateGains(points, set.Filters)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Freq [Hz]\tEQ [dB]\tWith preamp [dB]\tResult [dB]\n")
	fmt.Fprintf(tw, "---------\t-------\t----------------\t-----------\n")
	for i, freq := range points {
		fmt.Fprintf(tw, "%.0f\t%.2f\t%.2f\t%.2f\n",
			freq, gains[i], gains[i]+set.PreampDB, curve.At(base, freq)+gains[i]+set.PreampDB)
	}

	return tw.Flush()
}
