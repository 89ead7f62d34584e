package wavemarkcli

import (
	"fmt"
	"path/filepath"

	"github.com/oceanbiometrics/wavemark/lib/version"
	"github.com/oceanbiometrics/wavemark/lib/xmain"
)

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `%[1]s %[2]s
Usage:
  %[1]s [flags] [logo.svg | logo.png]
  %[1]s version

%[1]s renders a split-circle wave logo to logo.svg or logo.png.
The format follows the output file's extension and defaults to SVG.

Use - as the output path to write to stdout.

With -w[atch] and --params file.json, %[1]s re-renders on every change to
the params file and live reloads a browser preview.

Flags:
%[3]s
`, filepath.Base(ms.Name), version.Version, ms.Opts.Help())
}
