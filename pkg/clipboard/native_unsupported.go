//go:build !((windows || ((linux || darwin) && cgo)) && !android && !ios)

package clipboard

func nativeInit() error {
	return ErrUnsupportedPlatform
}

func nativeRead() (string, error) {
	return "", ErrUnsupportedPlatform
}

func nativeWrite(string) error {
	return ErrUnsupportedPlatform
}
