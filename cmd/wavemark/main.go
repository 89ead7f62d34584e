package main

import (
	"github.com/oceanbiometrics/wavemark/lib/xmain"
	"github.com/oceanbiometrics/wavemark/wavemarkcli"
)

func main() {
	xmain.Main(wavemarkcli.Run)
}
