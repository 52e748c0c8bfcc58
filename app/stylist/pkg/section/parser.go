// Package section 把模型返回的 **标题**正文 形式的文本拆成有序段落。
package section

import (
	"strings"
	"unicode"

	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/model"
)

// Marker 段落标题的强调标记
const Marker = "**"

// Parse 解析模型回复。任何输入都不会报错：无法识别的部分直接丢弃，
// 空串或不含标记的文本返回空切片。
func Parse(text string) []model.AnalysisSection {
	parts := strings.Split(text, Marker)
	// 第一个标记之前的内容视为前言
	parts = parts[1:]

	sections := make([]model.AnalysisSection, 0, len(parts)/2)
	for i := 0; i+1 < len(parts); i += 2 {
		title := strings.TrimSpace(parts[i])
		title = strings.TrimSuffix(title, ":")
		content := strings.TrimSpace(parts[i+1])

		if title == "" || content == "" {
			continue
		}

		sections = append(sections, model.AnalysisSection{
			Title:   title,
			Icon:    IconFor(title),
			Content: classify(title, content),
		})
	}
	return sections
}

func classify(title, content string) model.SectionContent {
	lower := strings.ToLower(title)
	switch {
	case is(lower, CategoryRecommendations):
		return model.ListContent(splitBullets(content))
	case is(lower, CategoryColorPalette):
		return model.ListContent(splitColors(content))
	default:
		return model.TextContent(content)
	}
}

// splitBullets 按 * 拆分建议列表。第一个 * 之前的文字是引导语，不算建议；
// 完全没有 * 时整段作为一条建议。
func splitBullets(content string) []string {
	pieces := strings.Split(content, "*")
	if len(pieces) > 1 {
		pieces = pieces[1:]
	}

	items := make([]string, 0, len(pieces))
	for _, p := range pieces {
		p = strings.TrimLeftFunc(strings.TrimSpace(p), func(r rune) bool {
			return r == '-' || unicode.IsSpace(r)
		})
		if p != "" {
			items = append(items, p)
		}
	}
	return items
}

// splitColors 取第一个冒号之后的部分按逗号拆分；没有冒号返回空列表
func splitColors(content string) []string {
	_, after, found := strings.Cut(content, ":")
	if !found {
		return []string{}
	}

	colors := []string{}
	for _, c := range strings.Split(after, ",") {
		if c = strings.TrimSpace(c); c != "" {
			colors = append(colors, c)
		}
	}
	return colors
}
