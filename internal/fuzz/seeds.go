package fuzztests

import (
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var languageSeeds = []string{
	"",
	"你好world",
	"部署到heroku有问题",
	"你好,世界.",
	"测试 ， 中文 。",
	"他说 “你好” 了",
	"# 标题Title\n\n正文text与`code`混排\n",
	"---\ntitle: 文档\n---\n正文\n",
	"```js\n// 注释abc\nconst a = \"你好world\"\n```\n",
	"~~~\n未标注的代码块\n~~~\n",
	"[链接link](https://example.com/路径) <https://example.com>\n",
	"<!-- 注释comment -->\n段落text\n",
	"<p>你好world</p>\n<style>\n/* 注释abc */\n</style>\n<script>// 脚本js\n</script>\n",
	"<pre>原样   保留</pre>&nbsp;&#x4e2d;\n",
	"<div class=\"测试\" data-x='a>b'>内容</div>",
	"<!-- 未闭合",
	"// autocorrect-disable\n// 关闭abc\n// autocorrect-enable\n",
	"package main\n\n// 注释abc\nvar s = \"字符串string\"\n",
	"# 注释abc\ns = '字符串string'\n",
	"\xff\xfe无效utf8",
	"\r\nCRLF换行\r\n",
}

// addCorpusSeeds adds the built-in seeds and the documents at the repository
// root.
func addCorpusSeeds(f *testing.F) {
	addLanguageSeeds(f)
	matches, err := filepath.Glob(filepath.Join("..", "..", "*.md"))
	if err != nil {
		return
	}
	for _, path := range matches {
		// #nosec G304 -- path comes from a repository glob
		src, err := os.ReadFile(path)
		if err != nil || len(src) > maxSeedBytes {
			continue
		}
		f.Add(src)
	}
}

func addLanguageSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

func clip(input []byte) string {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return string(input)
}
