package utils

import (
	"bytes"

	"github.com/mogaika/scrap_remaster/config"

	"golang.org/x/text/transform"
)

// BytesToString cuts bs at first zero and decodes it with configured codepage
func BytesToString(bs []byte) string {
	n := bytes.IndexByte(bs, 0)
	if n < 0 {
		n = len(bs)
	}

	s, _, err := transform.Bytes(config.GetEncoding().NewDecoder(), bs[0:n])
	if err != nil {
		// single byte charmaps decode every byte, keep raw bytes just in case
		return string(bs[0:n])
	}

	return string(s)
}

func StringToBytes(s string, nilTerminate bool) ([]byte, error) {
	bs, _, err := transform.Bytes(config.GetEncoding().NewEncoder(), []byte(s))
	if err != nil {
		return nil, err
	}
	if nilTerminate {
		bs = append(bs, 0)
	}
	return bs, nil
}
