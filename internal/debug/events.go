package debug

// GenerateStartData opens a font or image generation.
type GenerateStartData struct {
	Mode       string `json:"mode"` // "font", "image"
	Name       string `json:"name"`
	CodePage   int    `json:"code_page,omitempty"`
	Characters int    `json:"characters,omitempty"`
	Workers    int    `json:"workers"`
}

// CellData records the common cell every glyph is drawn into.
type CellData struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BorderData records the detected border of one source bitmap.
type BorderData struct {
	Index  int  `json:"index"`
	Rune   rune `json:"rune"`
	Left   int  `json:"left"`
	Top    int  `json:"top"`
	Right  int  `json:"right"`
	Bottom int  `json:"bottom"`
	Blank  bool `json:"blank,omitempty"`
}

// CommonBorderData records the reduce step over all borders.
type CommonBorderData struct {
	Found  bool `json:"found"`
	Left   int  `json:"left"`
	Top    int  `json:"top"`
	Right  int  `json:"right"`
	Bottom int  `json:"bottom"`
}

// CropData records the bitmap left after cropping and transforming.
type CropData struct {
	Index   int    `json:"index"`
	Rune    rune   `json:"rune"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Bytes   int    `json:"bytes"`
	Skipped string `json:"skipped,omitempty"`
}

// BlocksData records how descriptors were split into blocks.
type BlocksData struct {
	Threshold int     `json:"threshold"`
	Blocks    [][]int `json:"blocks"` // first and last offset per block
}

// GenerateEndData closes a generation.
type GenerateEndData struct {
	Characters  int   `json:"characters"`
	BitmapBytes int   `json:"bitmap_bytes"`
	ElapsedMs   int64 `json:"elapsed_ms"`
}

// ErrorData records a failed generation.
type ErrorData struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
