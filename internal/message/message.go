// Package message holds the user-facing strings of the geocoder, keyed by
// message ID and selected by locale.
package message

import "strings"

// ID names one message.
type ID string

const (
	MissingAddress  ID = "MISSING_ADDRESS"
	MissingScope    ID = "MISSING_SCOPE"
	InvalidFormat   ID = "INVALID_FORMAT"
	InvalidBody     ID = "INVALID_BODY"
	BatchTooLarge   ID = "BATCH_TOO_LARGE"
	InternalError   ID = "INTERNAL_ERROR"
	ServerStarting  ID = "SERVER_STARTING"
	StoreConnected  ID = "STORE_CONNECTED"
	ImportStarted   ID = "IMPORT_STARTED"
	ImportCompleted ID = "IMPORT_COMPLETED"
)

// Locale selects a message table.
type Locale string

const (
	English  Locale = "en"
	Japanese Locale = "ja"
)

var tables = map[Locale]map[ID]string{
	English: {
		MissingAddress:  "missing required query parameter 'address'",
		MissingScope:    "prefecture, city and town are required",
		InvalidFormat:   "unsupported output format",
		InvalidBody:     "request body must be a JSON array of addresses",
		BatchTooLarge:   "too many addresses in one request",
		InternalError:   "internal server error",
		ServerStarting:  "starting geocoding server",
		StoreConnected:  "connected to reference store",
		ImportStarted:   "starting import",
		ImportCompleted: "import completed",
	},
	Japanese: {
		MissingAddress:  "必須パラメータ 'address' が指定されていません",
		MissingScope:    "都道府県・市区町村・町字を指定してください",
		InvalidFormat:   "対応していない出力形式です",
		InvalidBody:     "リクエストボディは住所の JSON 配列である必要があります",
		BatchTooLarge:   "一度に指定できる住所の数を超えています",
		InternalError:   "サーバー内部でエラーが発生しました",
		ServerStarting:  "ジオコーディングサーバーを起動します",
		StoreConnected:  "参照データベースに接続しました",
		ImportStarted:   "インポートを開始します",
		ImportCompleted: "インポートが完了しました",
	},
}

// Catalog resolves message IDs for one locale.
type Catalog struct {
	locale Locale
}

// New returns the catalog for locale. Unknown locales fall back to English;
// "ja_JP.UTF-8" style values select Japanese.
func New(locale string) Catalog {
	l := Locale(strings.ToLower(locale))
	if strings.HasPrefix(string(l), string(Japanese)) {
		return Catalog{locale: Japanese}
	}
	return Catalog{locale: English}
}

// Locale reports the selected locale.
func (c Catalog) Locale() Locale {
	return c.locale
}

// Get returns the message for id, falling back to English and then to the ID itself.
func (c Catalog) Get(id ID) string {
	if s, ok := tables[c.locale][id]; ok {
		return s
	}
	if s, ok := tables[English][id]; ok {
		return s
	}
	return string(id)
}
