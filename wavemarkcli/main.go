package wavemarkcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/oceanbiometrics/wavemark"
	"github.com/oceanbiometrics/wavemark/lib/log"
	"github.com/oceanbiometrics/wavemark/lib/version"
	"github.com/oceanbiometrics/wavemark/lib/xmain"
	"github.com/oceanbiometrics/wavemark/wavepng"
	"github.com/oceanbiometrics/wavemark/wavesvg"
)

func Run(ctx context.Context, ms *xmain.State) (err error) {
	// These should be kept up-to-date with the wavemark man page
	watchFlag, err := ms.Opts.Bool("WAVEMARK_WATCH", "watch", "w", false, "watch the params file for changes and live reload a browser preview. Use $HOST and $PORT to specify the listening address.\n(default localhost:0, which will open on a randomly available local port).")
	if err != nil {
		return err
	}
	hostFlag := ms.Opts.String("HOST", "host", "", "localhost", "host listening address when used with watch")
	portFlag := ms.Opts.String("PORT", "port", "", "0", "port listening address when used with watch")
	browserFlag := ms.Opts.String("BROWSER", "browser", "", "", "browser executable that watch opens. Setting to 0 opens no browser.")
	debugFlag, err := ms.Opts.Bool("DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		return err
	}
	paramsFlag := ms.Opts.String("WAVEMARK_PARAMS", "params", "", "", "path to a JSON file of logo parameters. Flags passed explicitly take precedence over the file. Required for --watch.")

	defaults := wavemark.Defaults()
	diameterFlag, err := ms.Opts.Float64("WAVEMARK_DIAMETER", "diameter", "", defaults.Diameter, "outer diameter of the logo in pixels")
	if err != nil {
		return err
	}
	wavelengthFlag, err := ms.Opts.Float64("WAVEMARK_WAVELENGTH", "wavelength", "", defaults.Wavelength, "wavelength as a fraction of the diameter")
	if err != nil {
		return err
	}
	amplitudeFlag, err := ms.Opts.Float64("WAVEMARK_AMPLITUDE", "amplitude", "", defaults.Amplitude, "wave amplitude as a fraction of the diameter")
	if err != nil {
		return err
	}
	phaseFlag, err := ms.Opts.Float64("", "phase", "", 0, "horizontal phase offset of the wave, in radians")
	if err != nil {
		return err
	}
	baselineFlag, err := ms.Opts.Float64("", "baseline", "", 0, "vertical offset of the wave as a fraction of the diameter")
	if err != nil {
		return err
	}
	lineWidthFlag, err := ms.Opts.Float64("WAVEMARK_LINE_WIDTH", "line-width", "", defaults.LineWidth, "stroke width in pixels: the wave boundary in fill mode, every line in outline mode")
	if err != nil {
		return err
	}
	outlineFlag, err := ms.Opts.Bool("WAVEMARK_OUTLINE", "outline", "", false, "render the line-art variant: two opposite-phase waves and rim arcs instead of filled regions")
	if err != nil {
		return err
	}
	projectionFlag, err := ms.Opts.Float64("", "projection", "", 0, "stretch (>0) or contract (<0) the outline waves horizontally past the rim")
	if err != nil {
		return err
	}
	shift1Flag, err := ms.Opts.Float64("", "shift1", "", 0, "horizontal shift of the primary wave as a fraction of the diameter")
	if err != nil {
		return err
	}
	shift2Flag, err := ms.Opts.Float64("", "shift2", "", 0, "horizontal shift of the secondary outline wave as a fraction of the diameter")
	if err != nil {
		return err
	}
	fg1Flag := ms.Opts.String("WAVEMARK_FG1", "fg1", "", defaults.FG1, "color of the lower region, and of the secondary wave and bottom arc in outline mode")
	fg2Flag := ms.Opts.String("WAVEMARK_FG2", "fg2", "", defaults.FG2, "color of the upper region, and of the primary wave and top arc in outline mode")
	bgFlag := ms.Opts.String("WAVEMARK_BG", "bg", "", defaults.BG, `background color, "none" for transparent`)
	strokeFlag := ms.Opts.String("", "stroke", "", "", `color of the wave boundary stroke in fill mode. Empty picks a darkened fg1, "none" disables the stroke.`)
	padFlag, err := ms.Opts.Float64("WAVEMARK_PAD", "pad", "", defaults.Pad, "pixels padded around the logo. Negative means 5% of the diameter.")
	if err != nil {
		return err
	}
	scaleFlag, err := ms.Opts.Float64("SCALE", "scale", "", 1, "scale PNG output resolution. E.g., 2 doubles the pixel dimensions. SVG output is unaffected.")
	if err != nil {
		return err
	}
	versionFlag, err := ms.Opts.Bool("", "version", "v", false, "get the version")
	if err != nil {
		return err
	}
	stdoutFormatFlag := ms.Opts.String("", "stdout-format", "", "", "output format when writing to stdout (svg, png). Usage: wavemark --stdout-format png - > logo.png")

	err = ms.Opts.Flags.Parse(ms.Opts.Args)
	if !errors.Is(err, pflag.ErrHelp) && err != nil {
		return xmain.UsageErrorf("failed to parse flags: %v", err)
	}
	if errors.Is(err, pflag.ErrHelp) {
		help(ms)
		return nil
	}

	if len(ms.Opts.Flags.Args()) > 0 && ms.Opts.Flags.Arg(0) == "version" {
		if len(ms.Opts.Flags.Args()) > 1 {
			return xmain.UsageErrorf("version subcommand accepts no arguments")
		}
		fmt.Println(version.Version)
		return nil
	}

	if *debugFlag {
		ms.Env.Setenv("DEBUG", "1")
		os.Setenv("DEBUG", "1")
	}
	ctx = log.WithDefault(ctx)

	if *browserFlag != "" {
		ms.Env.Setenv("BROWSER", *browserFlag)
	}
	if *hostFlag != "" {
		ms.Env.Setenv("HOST", *hostFlag)
	}
	if *portFlag != "" {
		ms.Env.Setenv("PORT", *portFlag)
	}

	var outputPath string
	switch len(ms.Opts.Flags.Args()) {
	case 0:
		if *versionFlag {
			fmt.Println(version.Version)
			return nil
		}
		help(ms)
		return nil
	case 1:
		outputPath = ms.Opts.Flags.Arg(0)
	default:
		return xmain.UsageErrorf("too many arguments passed")
	}

	outputFormat, err := getOutputFormat(stdoutFormatFlag, outputPath)
	if err != nil {
		return xmain.UsageErrorf("%v", err)
	}

	// Flags the user passed explicitly always win. Everything else comes
	// from the params file when one is given, and from the flag defaults
	// (which include $WAVEMARK_* values) otherwise.
	applyFlags := func(p *wavemark.Params) {
		set := func(name string, apply func()) {
			if *paramsFlag == "" || ms.Opts.Flags.Changed(name) {
				apply()
			}
		}
		set("diameter", func() { p.Diameter = *diameterFlag })
		set("wavelength", func() { p.Wavelength = *wavelengthFlag })
		set("amplitude", func() { p.Amplitude = *amplitudeFlag })
		set("phase", func() { p.Phase = *phaseFlag })
		set("baseline", func() { p.Baseline = *baselineFlag })
		set("line-width", func() { p.LineWidth = *lineWidthFlag })
		set("outline", func() { p.Outline = *outlineFlag })
		set("projection", func() { p.Projection = *projectionFlag })
		set("shift1", func() { p.Shift1 = *shift1Flag })
		set("shift2", func() { p.Shift2 = *shift2Flag })
		set("fg1", func() { p.FG1 = *fg1Flag })
		set("fg2", func() { p.FG2 = *fg2Flag })
		set("bg", func() { p.BG = *bgFlag })
		set("stroke", func() { p.Stroke = *strokeFlag })
		set("pad", func() { p.Pad = *padFlag })
	}

	if *watchFlag {
		if outputPath == "-" {
			return xmain.UsageErrorf("-w[atch] cannot be combined with writing to stdout")
		}
		if *paramsFlag == "" {
			return xmain.UsageErrorf("-w[atch] requires --params, the file to watch")
		}
		w, err := newWatcher(ctx, ms, watcherOpts{
			paramsPath: *paramsFlag,
			outputPath: outputPath,
			format:     outputFormat,
			scale:      *scaleFlag,
			applyFlags: applyFlags,
		})
		if err != nil {
			return err
		}
		return w.run()
	}

	params := wavemark.Defaults()
	if *paramsFlag != "" {
		b, err := ms.ReadPath(*paramsFlag)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(b, &params); err != nil {
			return fmt.Errorf("failed to parse params file %v: %w", *paramsFlag, err)
		}
	}
	applyFlags(&params)

	out, err := render(ctx, params, outputFormat, *scaleFlag)
	if err != nil {
		return err
	}
	err = ms.WritePath(outputPath, out)
	if err != nil {
		return err
	}
	ms.Log.Success.Printf("successfully rendered to %s", outputPath)
	return nil
}

func render(ctx context.Context, params wavemark.Params, format exportExtension, scale float64) ([]byte, error) {
	logo, err := wavemark.Render(ctx, params)
	if err != nil {
		return nil, err
	}
	if format.requiresRasterizer() {
		return wavepng.Render(logo, scale)
	}
	return wavesvg.Render(logo)
}
