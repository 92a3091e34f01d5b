//go:build !mobile

// 非移动端构建时的占位文件
//
// mobile.go 和 embed.go 只在 -tags mobile 下编译，
// 这里保证 go build ./... 在桌面端也能通过。
package mobile

// Dummy 空导出函数
func Dummy() {}
