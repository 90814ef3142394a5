package core

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

func Address(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// https://stackoverflow.com/a/12518877
func FileExists(filePath string) (bool, error) {
	if _, err := os.Stat(filePath); err == nil {
		return true, nil
	} else if errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else {
		return false, err
	}
}

// ParseWindowID parses a decimal or 0x prefixed hexadecimal X resource id.
func ParseWindowID(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}

	id, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id: %w", err)
	}
	if id == 0 {
		return 0, errors.New("invalid window id: zero")
	}
	return uint32(id), nil
}
