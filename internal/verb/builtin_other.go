//go:build !unix

package verb

func platformBuiltins() []*Builder {
	return nil
}
