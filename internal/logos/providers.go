package logos

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// Default provider endpoints. Overridable on the Resolver for tests.
const (
	defaultBrandfetchBase = "https://api.brandfetch.io/v2/brands"
	defaultClearbitBase   = "https://logo.clearbit.com"
	defaultDuckDuckGoBase = "https://icons.duckduckgo.com/ip3"
)

// resolve tries the providers in preference order and returns the first
// usable binary payload with its source name: Brandfetch (when a key is
// configured), then Clearbit, then the DuckDuckGo favicon fallback.
func (r *Resolver) resolve(ctx context.Context, domain string) ([]byte, string, error) {
	if r.brandfetchKey != "" {
		if data, err := r.tryBrandfetch(ctx, domain); err == nil {
			return data, "Brandfetch", nil
		}
	}

	if data, err := r.client.FetchBinary(ctx, fmt.Sprintf("%s/%s", r.clearbitBase, domain), nil); err == nil {
		return data, "Clearbit", nil
	}

	if data, err := r.client.FetchBinary(ctx, fmt.Sprintf("%s/%s.ico", r.duckduckgoBase, domain), nil); err == nil {
		return data, "DuckDuckGo", nil
	}

	return nil, "", eris.Errorf("no provider returned a logo for %s", domain)
}

type brandfetchFormat struct {
	Src    string `json:"src"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type brandfetchLogo struct {
	Type    string             `json:"type"`
	Formats []brandfetchFormat `json:"formats"`
}

type brandfetchPayload struct {
	Logos []brandfetchLogo `json:"logos"`
}

func (r *Resolver) tryBrandfetch(ctx context.Context, domain string) ([]byte, error) {
	body, err := r.client.FetchBinary(ctx, fmt.Sprintf("%s/%s", r.brandfetchBase, domain), map[string]string{
		"Authorization": "Bearer " + r.brandfetchKey,
	})
	if err != nil {
		return nil, err
	}

	var payload brandfetchPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, eris.Wrap(err, "brandfetch: decode payload")
	}

	src := selectBrandfetchLogo(payload)
	if src == "" {
		return nil, eris.Errorf("brandfetch: no logo candidates for %s", domain)
	}
	return r.client.FetchBinary(ctx, src, nil)
}

var (
	brandfetchTypeRank   = map[string]int{"full": 3, "wordmark": 2, "symbol": 1, "icon": 1}
	brandfetchFormatRank = map[string]int{"svg": 5, "png": 4, "webp": 3, "jpg": 2, "jpeg": 2, "ico": 1}
)

// selectBrandfetchLogo picks the best candidate src by type rank, then
// format rank, then pixel area.
func selectBrandfetchLogo(p brandfetchPayload) string {
	type candidate struct {
		src       string
		typeScore int
		fmtScore  int
		area      int
	}

	var candidates []candidate
	for _, lg := range p.Logos {
		for _, f := range lg.Formats {
			if f.Src == "" {
				continue
			}
			ext := strings.ToLower(f.Format)
			if ext == "" {
				ext = srcExt(f.Src)
			}
			candidates = append(candidates, candidate{
				src:       f.Src,
				typeScore: brandfetchTypeRank[strings.ToLower(lg.Type)],
				fmtScore:  brandfetchFormatRank[ext],
				area:      f.Width * f.Height,
			})
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.typeScore != b.typeScore {
			return a.typeScore > b.typeScore
		}
		if a.fmtScore != b.fmtScore {
			return a.fmtScore > b.fmtScore
		}
		return a.area > b.area
	})
	return candidates[0].src
}

// srcExt extracts a lowercase file extension from a URL, query stripped.
func srcExt(src string) string {
	if i := strings.IndexByte(src, '?'); i >= 0 {
		src = src[:i]
	}
	if i := strings.LastIndexByte(src, '.'); i >= 0 {
		return strings.ToLower(src[i+1:])
	}
	return ""
}
