package section

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category 段落类别
type Category string

const (
	CategoryUnknown         Category = ""
	CategoryOuterwear       Category = "outerwear"
	CategoryBaseLayer       Category = "base_layer"
	CategoryBottom          Category = "bottom"
	CategoryFootwear        Category = "footwear"
	CategoryAccessories     Category = "accessories"
	CategoryOverallStyle    Category = "overall_style"
	CategoryColorPalette    Category = "color_palette"
	CategoryRecommendations Category = "recommendations"
	CategoryRating          Category = "rating"
)

// DefaultIcon 未识别标题使用的图标
const DefaultIcon = "📝"

// heading 一行标题表：类别、匹配短语（小写）、图标
type heading struct {
	category Category
	phrases  []string
	icon     string
}

// headings 按顺序匹配，先命中的行生效。新增语言只需要在 phrases 里追加短语。
var headings = []heading{
	{CategoryOuterwear, []string{"верхняя одежда", "outerwear", "outer layer"}, "🧥"},
	{CategoryBaseLayer, []string{"основной слой", "base layer", "main layer"}, "👕"},
	{CategoryBottom, []string{"низ", "bottom"}, "👖"},
	{CategoryFootwear, []string{"обувь", "footwear", "shoes"}, "👟"},
	{CategoryAccessories, []string{"аксессуар", "accessor"}, "💍"},
	{CategoryOverallStyle, []string{"общий стиль", "overall style", "general style"}, "🎨"},
	{CategoryColorPalette, []string{"цветовая палитра", "палитра", "color palette", "colour palette"}, "🌈"},
	{CategoryRecommendations, []string{"рекомендации", "советы", "improvement", "recommendation", "suggestion"}, "💡"},
	{CategoryRating, []string{"оценка", "рейтинг", "rating", "score"}, "📊"},
}

// CategoryOf 返回标题命中的第一个类别，未命中返回 CategoryUnknown
func CategoryOf(title string) Category {
	lower := strings.ToLower(title)
	for _, h := range headings {
		if h.matches(lower) {
			return h.category
		}
	}
	return CategoryUnknown
}

// IconFor 返回标题对应的图标
func IconFor(title string) string {
	lower := strings.ToLower(title)
	for _, h := range headings {
		if h.matches(lower) {
			return h.icon
		}
	}
	return DefaultIcon
}

// is 判断标题是否属于指定类别，与表中顺序无关
func is(lower string, c Category) bool {
	for _, h := range headings {
		if h.category == c {
			return h.matches(lower)
		}
	}
	return false
}

func (h heading) matches(lower string) bool {
	for _, p := range h.phrases {
		if hasWordPrefix(lower, p) {
			return true
		}
	}
	return false
}

// hasWordPrefix 判断 p 是否出现在某个词的开头，"низ" 不会命中 "организация"。
// 词尾不做限制，"accessor" 仍然匹配 "accessories"。
func hasWordPrefix(s, p string) bool {
	for i := 0; i < len(s); {
		j := strings.Index(s[i:], p)
		if j < 0 {
			return false
		}
		j += i
		if prev, _ := utf8.DecodeLastRuneInString(s[:j]); j == 0 || !unicode.IsLetter(prev) {
			return true
		}
		i = j + len(p)
	}
	return false
}
