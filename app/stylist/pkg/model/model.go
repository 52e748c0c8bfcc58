package model

import "encoding/json"

// SectionContent 分析段落的内容：普通文本或字符串列表（建议、配色）
type SectionContent struct {
	Text  string
	Items []string
	list  bool
}

// TextContent 构造普通文本内容
func TextContent(text string) SectionContent {
	return SectionContent{Text: text}
}

// ListContent 构造列表内容，nil 会被当作空列表
func ListContent(items []string) SectionContent {
	if items == nil {
		items = []string{}
	}
	return SectionContent{Items: items, list: true}
}

// IsList 是否为列表内容
func (c SectionContent) IsList() bool { return c.list }

// MarshalJSON 文本编码为字符串，列表编码为数组
func (c SectionContent) MarshalJSON() ([]byte, error) {
	if c.list {
		return json.Marshal(c.Items)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON 接受字符串或字符串数组
func (c *SectionContent) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*c = ListContent(items)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*c = TextContent(text)
	return nil
}

// AnalysisSection 模型回复中的一个带标题段落
type AnalysisSection struct {
	Title   string         `json:"title"`
	Icon    string         `json:"icon"`
	Content SectionContent `json:"content"`
}

// OutfitAnalysis 一次穿搭分析（或文字提问）的结果
type OutfitAnalysis struct {
	Analysis string            `json:"analysis"` // 模型原始回复
	Sections []AnalysisSection `json:"structuredAnalysis"`
}

// PlaceRecord 附近门店，distance 单位为米
type PlaceRecord struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	DistanceMeters   int      `json:"distance"`
	IsOpenNow        *bool    `json:"isOpen,omitempty"`
	OpeningHoursText string   `json:"openingHoursText"`
	Rating           *float64 `json:"rating,omitempty"`
	SearchKeyword    string   `json:"searchKeyword"`
}
