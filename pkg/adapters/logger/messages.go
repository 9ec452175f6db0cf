package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Server
		"Listening on %s":               "%s で待ち受け中",
		"Shutting down server":          "サーバーを停止しています",
		"Server stopped":                "サーバーを停止しました",
		"%s %s -> %d (%d ms)":           "%s %s -> %d (%d ms)",
		"Request failed: %s":            "リクエストに失敗しました: %s",
		"Request rejected: %s":          "リクエストを拒否しました: %s",
		"Panic recovered: %s":           "パニックから復帰しました: %s",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"Fonts loaded: %s":              "フォントを読み込みました: %s",

		// Fonts
		"Font %s loaded from %s":                      "フォント %s を %s から読み込みました",
		"Font %s unavailable (%s), using embedded %s": "フォント %s を利用できません (%s)。組み込みの %s を使用します",

		// Load stage
		"Fetching image from %s":           "%s から画像を取得中",
		"Fetched %d bytes":                 "%d バイトを取得しました",
		"Decoding base64 image (%d bytes)": "base64 画像をデコード中 (%d バイト)",
		"Image decoded: %dx%d %s":          "画像デコード完了: %dx%d %s",

		// Caption stage / engine
		"Rendering %d caption boxes":                   "%d 個のキャプションを描画中",
		"Box %d: empty text, skipped":                  "ボックス %d: テキストが空のためスキップ",
		"Box %d: %d lines at size %d (%dx%d in %dx%d)": "ボックス %d: %d 行、サイズ %d (%dx%d / %dx%d)",

		// Encode stage
		"Encoding %s (base64: %t)": "%s にエンコード中 (base64: %t)",
		"Image encoded: %d bytes":  "画像エンコード完了: %d バイト",

		// Orchestrator
		"Processing request with %d boxes": "%d 個のボックスを含むリクエストを処理中",
		"Request completed":                "リクエストが完了しました",
		"Failed to load image: %s":         "画像の読み込みに失敗しました: %s",
		"Failed to render captions: %s":    "キャプションの描画に失敗しました: %s",
		"Failed to encode image: %s":       "画像のエンコードに失敗しました: %s",
		"Debug output failed: %s":          "デバッグ出力に失敗しました: %s",
		"Output saved to %s":               "出力を %s に保存しました",
		"Summary saved to %s":              "サマリーを %s に保存しました",
	})
}
