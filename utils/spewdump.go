package utils

import (
	"bytes"
	"fmt"
	"log"

	"github.com/davecgh/go-spew/spew"
)

var spewConfig *spew.ConfigState

func init() {
	spewConfig = spew.NewDefaultConfig()
	spewConfig.DisableCapacities = true
	spewConfig.DisablePointerAddresses = true
}

func Dump(a ...interface{}) {
	fmt.Println(spewConfig.Sdump(a...))
}

// DumpToOneLineString renders printable ascii as is, rest as \xNN
func DumpToOneLineString(buf []byte) string {
	var out bytes.Buffer

	for _, b := range buf {
		if b >= 0x20 && b < 0x7f {
			out.WriteByte(b)
		} else {
			fmt.Fprintf(&out, "\\x%.2x", b)
		}
	}

	return out.String()
}

func SDump(a ...interface{}) string {
	return spewConfig.Sdump(a...)
}

func LogDump(a ...interface{}) {
	log.Println(spewConfig.Sdump(a...))
}
