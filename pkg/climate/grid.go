package climate

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// UnknownCode is reported when no grid cell lies near the query.
const UnknownCode = "Unknown"

// SearchRadius bounds the nearest-neighbour search, in degrees on each axis.
const SearchRadius = 1.0

type cell struct {
	lat, lon float64
	key      string
	code     string
}

type bucket struct{ lat, lon int }

// Grid maps quarter-degree cells to climate codes. It is immutable once
// built and safe for concurrent use.
type Grid struct {
	codes   map[string]string
	cells   []cell
	buckets map[bucket][]int
}

func newGrid(n int) *Grid {
	return &Grid{
		codes:   make(map[string]string, n),
		cells:   make([]cell, 0, n),
		buckets: make(map[bucket][]int),
	}
}

// add stores code at lat/lon. A later duplicate overwrites the code.
func (g *Grid) add(lat, lon float64, code string) {
	key := strconv.FormatFloat(lat, 'f', 2, 64) + " " + strconv.FormatFloat(lon, 'f', 2, 64)
	if _, dup := g.codes[key]; dup {
		g.codes[key] = code
		for i := range g.cells {
			if g.cells[i].key == key {
				g.cells[i].code = code
			}
		}
		return
	}
	g.codes[key] = code
	g.cells = append(g.cells, cell{lat: lat, lon: lon, key: key, code: code})
	b := bucketOf(lat, lon)
	g.buckets[b] = append(g.buckets[b], len(g.cells)-1)
}

func bucketOf(lat, lon float64) bucket {
	return bucket{lat: int(math.Floor(lat)), lon: int(math.Floor(lon))}
}

// Len is the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Lookup returns the code stored under an exact key.
func (g *Grid) Lookup(key string) (string, bool) {
	code, ok := g.codes[key]
	return code, ok
}

// Neighbour is the result of a nearest-cell search.
type Neighbour struct {
	Key      string
	Code     string
	Distance float64
}

// Nearest finds the cell closest to the quantized query within SearchRadius
// on both axes. Equal distances go to the lexically smallest key.
func (g *Grid) Nearest(lat, lon float64) (Neighbour, bool) {
	qlat, qlon := quantize(lat), quantize(lon)
	center := bucketOf(qlat, qlon)
	best := Neighbour{Distance: math.Inf(1)}
	found := false
	for dlat := -1; dlat <= 1; dlat++ {
		for dlon := -1; dlon <= 1; dlon++ {
			for _, i := range g.buckets[bucket{lat: center.lat + dlat, lon: center.lon + dlon}] {
				c := g.cells[i]
				if d, ok := within(c, qlat, qlon); ok && better(d, c.key, best) {
					best = Neighbour{Key: c.key, Code: c.code, Distance: d}
					found = true
				}
			}
		}
	}
	return best, found
}

func within(c cell, qlat, qlon float64) (float64, bool) {
	dlat, dlon := c.lat-qlat, c.lon-qlon
	if math.Abs(dlat) > SearchRadius || math.Abs(dlon) > SearchRadius {
		return 0, false
	}
	return math.Sqrt(dlat*dlat + dlon*dlon), true
}

func better(d float64, key string, best Neighbour) bool {
	return d < best.Distance || (d == best.Distance && key < best.Key)
}

// Match is the outcome of resolving a location.
type Match struct {
	Code string `json:"code"`
	// Info describes how the code was found: the key, the key plus the
	// nearest cell, or "(override)".
	Info     string  `json:"matchInfo"`
	Key      string  `json:"key,omitempty"`
	Nearest  string  `json:"nearest,omitempty"`
	Distance float64 `json:"distance,omitempty"`
	Exact    bool    `json:"exact,omitempty"`
	Override bool    `json:"override,omitempty"`
}

// Known reports whether a code other than UnknownCode was found.
func (m Match) Known() bool { return m.Code != "" && m.Code != UnknownCode }

// Resolve looks up lat/lon: an exact cell, else the nearest cell in range,
// else UnknownCode.
func (g *Grid) Resolve(lat, lon float64) Match {
	key := Key(lat, lon)
	if code, ok := g.codes[key]; ok {
		return Match{Code: code, Info: key, Key: key, Exact: true}
	}
	if n, ok := g.Nearest(lat, lon); ok {
		return Match{
			Code:     n.Code,
			Info:     fmt.Sprintf("%s (nearest: %s, dist: %.2f°)", key, n.Key, n.Distance),
			Key:      key,
			Nearest:  n.Key,
			Distance: n.Distance,
		}
	}
	return Match{Code: UnknownCode, Info: key, Key: key}
}

// ParseGrid reads a grid in either supported format: a JSON object of
// "lat lon" (or "lat,lon") keys to codes, or the whitespace separated
// "lat lon code" table the JSON is generated from.
func ParseGrid(r io.Reader) (*Grid, error) {
	br := bufio.NewReader(r)
	for {
		b, err := br.Peek(1)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("climate: empty grid")
			}
			return nil, fmt.Errorf("climate: read grid: %w", err)
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			_, _ = br.ReadByte()
			continue
		case '{':
			return ParseJSON(br)
		default:
			return ParseASCII(br)
		}
	}
}

// ParseJSON reads the JSON grid form.
func ParseJSON(r io.Reader) (*Grid, error) {
	var raw map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("climate: decode grid: %w", err)
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	g := newGrid(len(raw))
	for _, k := range keys {
		lat, lon, err := ParsePair(k)
		if err != nil {
			return nil, fmt.Errorf("climate: grid key %q: %w", k, err)
		}
		g.add(lat, lon, strings.TrimSpace(raw[k]))
	}
	if g.Len() == 0 {
		return nil, errors.New("climate: empty grid")
	}
	return g, nil
}

// ParseASCII reads "lat lon code" lines. Lines that do not have exactly three
// fields, such as headers, are skipped.
func ParseASCII(r io.Reader) (*Grid, error) {
	g := newGrid(0)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) != 3 {
			continue
		}
		lat, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("climate: line %d: %w", line, ErrInvalidCoordinate)
		}
		g.add(lat, lon, fields[2])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("climate: read grid: %w", err)
	}
	if g.Len() == 0 {
		return nil, errors.New("climate: empty grid")
	}
	return g, nil
}
