package cli

import (
	"fmt"
	"io"
	"strings"
)

const bannerArt = `
███████╗████████╗ █████╗ ████████╗███████╗ ██████╗██████╗  █████╗ ███████╗████████╗
██╔════╝╚══██╔══╝██╔══██╗╚══██╔══╝██╔════╝██╔════╝██╔══██╗██╔══██╗██╔════╝╚══██╔══╝
███████╗   ██║   ███████║   ██║   █████╗  ██║     ██████╔╝███████║█████╗     ██║
╚════██║   ██║   ██╔══██║   ██║   ██╔══╝  ██║     ██╔══██╗██╔══██║██╔══╝     ██║
███████║   ██║   ██║  ██║   ██║   ███████╗╚██████╗██║  ██║██║  ██║██║        ██║
╚══════╝   ╚═╝   ╚═╝  ╚═╝   ╚═╝   ╚══════╝ ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝        ╚═╝

                                      __          ___           ____           _____
                                     / /  __ __  / _ \___ _  __/ __ \___  ___ / ___/______  __ _____
                                    / _ \/ // / / // / -_) |/ / /_/ / _ \(_-</ (_ / __/ _ \/ // / _ \
                                   /_.__/\_, / /____/\__/|___/\____/ .__/___/\___/_/  \___/\_,_/ .__/
                                        /___/                     /_/                         /_/
`

const bannerSeparatorWidth = 105

func printBanner(w io.Writer) {
	fmt.Fprint(w, bannerArt+"\n")
	fmt.Fprintln(w, strings.Repeat("-", bannerSeparatorWidth))
}
