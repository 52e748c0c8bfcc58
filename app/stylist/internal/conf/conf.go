package conf

type Bootstrap struct {
	Server  *Server
	Stylist *Stylist
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr        string
	Timeout     string
	CorsOrigins []string `json:"cors_origins"`
	// MaxUploadBytes 上传照片的大小上限
	MaxUploadBytes int64 `json:"max_upload_bytes"`
}

type Stylist struct {
	Llm      *LLM    `json:"llm"`
	Places   *Places `json:"places"`
	Log      *Log    `json:"log"`
	Language string  `json:"language"`
}

type LLM struct {
	BaseUrl   string `json:"base_url"`
	ApiKey    string `json:"api_key"`
	Model     string `json:"model"`
	MaxTokens int32  `json:"max_tokens"`
	Timeout   int32  `json:"timeout"`
}

type Places struct {
	Provider string    `json:"provider"`
	Radius   int32     `json:"radius"`
	Language string    `json:"language"`
	Keywords []string  `json:"keywords"`
	Google   *Google   `json:"google"`
	Overpass *Overpass `json:"overpass"`
}

type Google struct {
	ApiKey  string `json:"api_key"`
	BaseUrl string `json:"base_url"`
}

type Overpass struct {
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}
