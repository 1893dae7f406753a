package tracing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPII(t *testing.T) {
	assert.Equal(t, "", MaskPII(""))
	assert.Equal(t, "*", MaskPII("a"))
	assert.Equal(t, "张*", MaskPII("张三"))
	assert.Equal(t, "王*明", MaskPII("王小明"))
	assert.Equal(t, "13*******78", MaskPII("13812345678"))
	assert.Equal(t, "my"+strings.Repeat("*", 15)+"om", MaskPII("myemail@example.com"))
}

func TestSafeAttributeValue(t *testing.T) {
	// 敏感字段名触发掩码
	assert.Equal(t, "ja"+strings.Repeat("*", 12)+"om", SafeAttributeValue("user.email", "jane@example.com", DefaultMaxLength))
	// 非敏感字段按长度截断
	long := strings.Repeat("x", 300)
	safe := SafeAttributeValue("note", long, 20)
	assert.LessOrEqual(t, len([]rune(safe)), 20)
	assert.Contains(t, safe, "...")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))

	long := strings.Repeat("a", 100) + strings.Repeat("b", 100)
	out := TruncateString(long, 21)
	assert.Equal(t, strings.Repeat("a", 9)+"..."+strings.Repeat("b", 9), out)
}

func TestSafeResumeContent(t *testing.T) {
	long := strings.Repeat("r", 500)
	assert.LessOrEqual(t, len([]rune(SafeResumeContent(long))), MaxResumeLength)
	assert.Equal(t, "short resume", SafeResumeContent("short resume"))
}
