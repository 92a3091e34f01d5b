package utils

import (
	"strings"
	"unicode/utf8"
)

// DebugGlyphWidth ebitenutil.DebugPrint 内置字体的字宽（像素）
const DebugGlyphWidth = 6.0

// DebugLineHeight ebitenutil.DebugPrint 的行高（像素）
const DebugLineHeight = 16.0

// DebugTextWidth 调试字体下文本的像素宽度
func DebugTextWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * DebugGlyphWidth
}

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - maxWidth: 最大宽度（像素）
//   - measure: 测量函数，nil 时使用 DebugTextWidth
//
// 换行规则:
//   - 优先在空格处断行
//   - 如果单词太长超过最大宽度，强制断行
func WrapText(textStr string, maxWidth float64, measure func(string) float64) []string {
	if measure == nil {
		measure = DebugTextWidth
	}
	if textStr == "" || maxWidth <= 0 || measure(textStr) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(textStr) {
		testLine := word
		if currentLine != "" {
			testLine = currentLine + " " + word
		}
		if measure(testLine) <= maxWidth {
			currentLine = testLine
			continue
		}
		if currentLine != "" {
			lines = append(lines, currentLine)
		}
		// 单词本身超宽：按字符强制断开
		currentLine = ""
		for measure(word) > maxWidth {
			cut := 0
			for i := range word {
				if i > 0 && measure(word[:i]) > maxWidth {
					break
				}
				cut = i
			}
			if cut == 0 {
				_, cut = utf8.DecodeRuneInString(word)
			}
			lines = append(lines, word[:cut])
			word = word[cut:]
		}
		currentLine = word
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}
