package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for preset resolution
var (
	ErrUnknownPreset = errors.New("unknown mirror preset")
	ErrInvalidURL    = errors.New("mirror url must be a single line")
)

// Preset is one package-index mirror the user can switch to.
type Preset struct {
	Key   string // stable identifier, used as the export key
	Label string // display name
	URL   string
}

// presets is the fixed mirror table. Order is the button order in the UI.
var presets = []Preset{
	{Key: "pypi", Label: "PyPI", URL: "https://pypi.org/simple"},
	{Key: "aliyun", Label: "Aliyun", URL: "https://mirrors.aliyun.com/pypi/simple/"},
	{Key: "tsinghua", Label: "Tsinghua", URL: "https://pypi.tuna.tsinghua.edu.cn/simple/"},
	{Key: "ustc", Label: "USTC", URL: "https://pypi.mirrors.ustc.edu.cn/simple/"},
	{Key: "douban", Label: "Douban", URL: "http://pypi.douban.com/simple/"},
	{Key: "tencent", Label: "Tencent Cloud", URL: "https://mirrors.cloud.tencent.com/pypi/simple"},
	{Key: "huaweicloud", Label: "Huawei Cloud", URL: "https://repo.huaweicloud.com/repository/pypi/simple/"},
	{Key: "hustunique", Label: "HUST", URL: "http://pypi.hustunique.com/"},
	{Key: "netease", Label: "NetEase", URL: "https://mirrors.163.com/pypi/simple/"},
}

// Presets returns a copy of the mirror table in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// Lookup finds a preset by key or label, ignoring case.
func Lookup(name string) (Preset, error) {
	name = strings.TrimSpace(name)
	for _, p := range presets {
		if strings.EqualFold(p.Key, name) || strings.EqualFold(p.Label, name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// Resolve accepts either a preset name or a literal http(s) URL.
// A literal URL comes back as an unnamed custom preset.
func Resolve(arg string) (Preset, error) {
	arg = strings.TrimSpace(arg)
	if strings.ContainsAny(arg, "\r\n") {
		return Preset{}, fmt.Errorf("%w: %q", ErrInvalidURL, arg)
	}
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		for _, p := range presets {
			if p.URL == arg {
				return p, nil
			}
		}
		return Preset{Key: "custom", Label: "Custom", URL: arg}, nil
	}
	return Lookup(arg)
}

// ExportJSON serializes the presets as a single JSON object mapping key to URL.
// Keys keep table order, which encoding/json would not do for a map.
func ExportJSON(list []Preset) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range list {
		if i > 0 {
			buf.WriteString(", ")
		}
		k, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.URL)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ExportYAML serializes the presets as a YAML mapping, in table order.
func ExportYAML(list []Preset) ([]byte, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range list {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: p.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: p.URL},
		)
	}
	return yaml.Marshal(node)
}
