package v1

// AnalyzeStyleRequest 按照片 URL 分析穿搭
type AnalyzeStyleRequest struct {
	PhotoUrl string `json:"photoUrl"`
	Language string `json:"language,omitempty"`
}

// UploadStyleRequest 上传照片分析穿搭：multipart 的 photo 字段，或 JSON 中的 base64
type UploadStyleRequest struct {
	PhotoBase64 string `json:"photoBase64"`
	MimeType    string `json:"mimeType,omitempty"`
	Language    string `json:"language,omitempty"`

	// Photo multipart 上传时的原始字节
	Photo []byte `json:"-"`
}

// AskStylistRequest 文字提问
type AskStylistRequest struct {
	Question string `json:"question"`
	Language string `json:"language,omitempty"`
}

// AnalysisReply 分析结果
type AnalysisReply struct {
	Success            bool       `json:"success"`
	Analysis           string     `json:"analysis"`
	StructuredAnalysis []*Section `json:"structuredAnalysis"`
}

// Section 一个段落，Content 为字符串或字符串数组
type Section struct {
	Title   string      `json:"title"`
	Icon    string      `json:"icon"`
	Content interface{} `json:"content"`
}

// NearbyStoresRequest 附近门店查询，坐标缺失时为 nil
type NearbyStoresRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Language  string   `json:"language,omitempty"`
}

// NearbyStoresReply 附近门店列表，按首次出现顺序
type NearbyStoresReply struct {
	Stores []*Store `json:"stores"`
}

// Store 一家门店
type Store struct {
	Id               string   `json:"id"`
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	Distance         int      `json:"distance"`
	IsOpen           *bool    `json:"isOpen,omitempty"`
	OpeningHoursText string   `json:"openingHoursText"`
	Rating           *float64 `json:"rating,omitempty"`
	PlaceID          string   `json:"placeID"`
	SearchKeyword    string   `json:"searchKeyword"`
}
