// Package eac edits the handwriting (note) section of a per-app EAC
// configuration blob. Blobs are kept as raw JSON bytes end to end; only the
// targeted activityConfigMap entry is ever rewritten, every other byte of
// the stored document passes through untouched.
package eac

// AnyActivity is the activity key the device reader treats as "apply to
// every activity of the app". Used when the caller does not scope the
// optimization to a specific entry screen.
const AnyActivity = "*"

// ActivityConfig is the fixed per-activity settings bundle the device
// expects under activityConfigMap. Field order matches the on-device
// serialization.
type ActivityConfig struct {
	ClsName           string        `json:"clsName"`
	DisableScrollAnim bool          `json:"disableScrollAnim"`
	DisplayConfig     DisplayConfig `json:"displayConfig"`
	Enable            bool          `json:"enable"`
	NoteConfig        NoteConfig    `json:"noteConfig"`
	PaintConfig       PaintConfig   `json:"paintConfig"`
	RefreshConfig     RefreshConfig `json:"refreshConfig"`
}

type DisplayConfig struct {
	BWMode                int  `json:"bwMode"`
	CFAColorBrightness    int  `json:"cfaColorBrightness"`
	CFAColorSaturation    int  `json:"cfaColorSaturation"`
	CFAColorSaturationMin int  `json:"cfaColorSaturationMin"`
	Contrast              int  `json:"contrast"`
	DitherThreshold       int  `json:"ditherThreshold"`
	Enable                bool `json:"enable"`
	Enhance               bool `json:"enhance"`
	MonoLevel             int  `json:"monoLevel"`
}

// NoteConfig carries the handwriting optimization proper: which view class
// receives pen input and how strokes are styled.
type NoteConfig struct {
	CompatibleVersionCode int            `json:"compatibleVersionCode"`
	DrawViewKey           string         `json:"drawViewKey"`
	Enable                bool           `json:"enable"`
	GlobalStrokeStyle     StrokeStyle    `json:"globalStrokeStyle"`
	RepaintLatency        int            `json:"repaintLatency"`
	StyleMap              map[string]any `json:"styleMap"`
	SupportNoteConfig     bool           `json:"supportNoteConfig"`
}

type StrokeStyle struct {
	Enable          bool  `json:"enable"`
	StrokeColor     int   `json:"strokeColor"`
	StrokeExtraArgs []any `json:"strokeExtraArgs"`
	StrokeParams    []any `json:"strokeParams"`
	StrokeStyle     int   `json:"strokeStyle"`
	StrokeWidth     int   `json:"strokeWidth"`
}

type PaintConfig struct {
	AntiAliasingType int  `json:"antiAlisingType"`
	DitherBitmap     bool `json:"ditherBitmap"`
	Enable           bool `json:"enable"`
	FillBrightness   int  `json:"fillBrightness"`
	FillContrast     int  `json:"fillContrast"`
	FillEAC          bool `json:"fillEAC"`
	IconBrightness   int  `json:"iconBrightness"`
	IconContrast     int  `json:"iconContrast"`
	IconEAC          bool `json:"iconEAC"`
	IconThreshold    int  `json:"iconThreshold"`
	ImgEAC           bool `json:"imgEAC"`
	ImgGamma         int  `json:"imgGamma"`
	QuantBits        int  `json:"quantBits"`
	TextBold         bool `json:"textBold"`
	TextEACType      int  `json:"textEACType"`
}

type RefreshConfig struct {
	AnimationDuration  int  `json:"animationDuration"`
	AntiFlicker        int  `json:"antiFlicker"`
	Enable             bool `json:"enable"`
	GCInterval         int  `json:"gcInterval"`
	SupportRegal       bool `json:"supportRegal"`
	Turbo              int  `json:"turbo"`
	UpdateMode         int  `json:"updateMode"`
	UseGCForNewSurface bool `json:"useGCForNewSurface"`
}

const strokeColorBlack = -16777216

// NewActivityConfig returns the handwriting-optimized bundle for one
// activity: pen-tuned refresh (update mode 2, turbo 2), a plain black
// 3px pen stroke, and the supplied draw view key.
func NewActivityConfig(drawViewKey, activity string) ActivityConfig {
	return ActivityConfig{
		ClsName: activity,
		DisplayConfig: DisplayConfig{
			CFAColorSaturationMin: 60,
			Contrast:              30,
			DitherThreshold:       128,
			Enable:                true,
			Enhance:               true,
			MonoLevel:             10,
		},
		Enable: true,
		NoteConfig: NoteConfig{
			DrawViewKey: drawViewKey,
			Enable:      true,
			GlobalStrokeStyle: StrokeStyle{
				Enable:          true,
				StrokeColor:     strokeColorBlack,
				StrokeExtraArgs: []any{},
				StrokeParams:    []any{},
				StrokeWidth:     3,
			},
			RepaintLatency:    500,
			StyleMap:          map[string]any{},
			SupportNoteConfig: true,
		},
		PaintConfig: PaintConfig{
			ImgEAC:    true,
			ImgGamma:  60,
			QuantBits: 3,
		},
		RefreshConfig: RefreshConfig{
			AnimationDuration: 50,
			AntiFlicker:       10,
			Enable:            true,
			GCInterval:        20,
			Turbo:             2,
			UpdateMode:        2,
		},
	}
}
