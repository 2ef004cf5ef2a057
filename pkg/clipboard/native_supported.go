//go:build (windows || ((linux || darwin) && cgo)) && !android && !ios

package clipboard

import (
	"sync"

	xclip "golang.design/x/clipboard"
)

var nativeInit = sync.OnceValue(func() error {
	return xclip.Init()
})

func nativeRead() (string, error) {
	if err := nativeInit(); err != nil {
		return "", err
	}
	return string(xclip.Read(xclip.FmtText)), nil
}

func nativeWrite(text string) error {
	if err := nativeInit(); err != nil {
		return err
	}
	xclip.Write(xclip.FmtText, []byte(text))
	return nil
}
