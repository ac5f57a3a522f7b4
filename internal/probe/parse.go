package probe

import (
	"errors"
	"strings"

	"gamebrowser/internal/browser"
	"gamebrowser/internal/content"
)

const (
	queryPacket    = "\xff\xff\xff\xffgetinfo\n"
	responseHeader = "\xff\xff\xff\xffinfoResponse"
)

var ErrMalformedResponse = errors.New("malformed info response")

// ParseInfoResponse decodes an info response datagram. The payload is a
// header line followed by a backslash-separated key/value line:
//
//	\sv_hostname\My Server\version\1.2\content\<fp>~Base Pack,<fp>~Extra
//
// localVersion is compared against the server's reported version to decide
// version compatibility; an empty localVersion accepts anything.
func ParseInfoResponse(data []byte, localVersion string) (browser.Info, error) {
	lines := strings.Split(string(data), "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != responseHeader {
		return browser.Info{}, ErrMalformedResponse
	}

	keyValues := strings.Split(strings.TrimPrefix(lines[1], "\\"), "\\")
	info := browser.Info{}
	version := ""

	for i := 0; i < len(keyValues)-1; i += 2 {
		k, v := keyValues[i], keyValues[i+1]
		switch k {
		case "sv_hostname":
			info.Name = v
		case "version":
			version = v
		case "content":
			info.Requirements = parseRequirements(v)
		}
	}

	if info.Name == "" {
		return browser.Info{}, ErrMalformedResponse
	}

	info.VersionCompatible = localVersion == "" || version == localVersion
	return info, nil
}

// parseRequirements decodes the comma-separated "fingerprint~name" list a
// server declares. The name part is optional.
func parseRequirements(s string) []*browser.Requirement {
	if s == "" {
		return nil
	}

	var reqs []*browser.Requirement
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		fp, name, _ := strings.Cut(entry, "~")
		if fp == "" {
			continue
		}
		reqs = append(reqs, browser.NewRequirement(content.Fingerprint(fp), name))
	}
	return reqs
}
