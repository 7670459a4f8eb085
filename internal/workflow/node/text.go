// Package node 提供链路节点共用的文本工具
package node

import (
	"fmt"
	"unicode/utf8"
)

// DefaultPreviewRunes 详细日志中单个字段保留的最大字符数
const DefaultPreviewRunes = 2000

// TruncateByRunes 按字符截断，不会切开多字节字符
func TruncateByRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i]
		}
		n++
	}
	return s
}

// Preview 截断过长文本并标注被省略的字符数
func Preview(s string, maxRunes int) string {
	total := utf8.RuneCountInString(s)
	if total <= maxRunes {
		return s
	}
	return fmt.Sprintf("%s…(%d more)", TruncateByRunes(s, maxRunes), total-maxRunes)
}
