// Package main provides localization for the captionbox CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration":    "設定",
		"Logging":          "ログ",
		"Server":           "サーバー",
		"Input and Output": "入出力",
		"Debug":            "デバッグ",

		// Root command
		"Overlay text captions onto images": "画像にテキストキャプションを重ねる",
		"captionbox fits text into rectangles on an image, choosing the largest font size that fits, and serves this over HTTP.": "captionboxは画像上の矩形に収まる最大のフォントサイズでテキストを配置し、HTTPで提供します。",
		"Error: %s": "エラー: %s",

		// Serve command
		"Start the HTTP server": "HTTPサーバーを起動",
		"Serve POST / for caption requests and GET /healthz for health checks.": "POST / でキャプション要求を、GET /healthz でヘルスチェックを受け付けます。",
		"Listen address (default: :8000)":                            "待ち受けアドレス（デフォルト: :8000）",
		"Allow fetching images from private and loopback addresses": "プライベートアドレスやループバックアドレスからの画像取得を許可",

		// Render command
		"Caption a single image locally": "1枚の画像をローカルでキャプション付け",
		"Run the caption pipeline on an image file or URL and write the result to a file.": "画像ファイルまたはURLにキャプション処理を行い、結果をファイルに書き出します。",
		"Source image file or URL (required)":             "入力画像ファイルまたはURL（必須）",
		"Caption boxes as a JSON or YAML file (required)": "キャプションボックスを記述したJSONまたはYAMLファイル（必須）",
		"Output file path (required)":                     "出力ファイルパス（必須）",
		"Output format (png, jpeg, b64/png, b64/jpeg); inferred from the output extension by default": "出力形式（png, jpeg, b64/png, b64/jpeg）。省略時は出力ファイルの拡張子から判定",
		"Write a Markdown summary of the run to this path": "実行結果のMarkdownサマリーを書き出すパス",
		"Save intermediate images and layouts":             "中間画像とレイアウトを保存",
		"Directory for debug output":                       "デバッグ出力先ディレクトリ",

		// Fonts command
		"List font selectors and where they were loaded from": "フォント名と読み込み元を一覧表示",

		// Version command
		"Show version information": "バージョン情報を表示",
		"captionbox version %s":    "captionbox バージョン %s",

		// Common flags
		"YAML configuration file":              "YAML設定ファイル",
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "すべてのログ出力を抑制",
	})
}
