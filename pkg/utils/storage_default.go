//go:build !android

package utils

// EnsureStorageDir 非 Android 平台无需准备目录
// 桌面端 gdata 自己创建目录，浏览器端写入 localStorage
func EnsureStorageDir(appName string) error {
	return nil
}

// GetStoragePath 非 Android 平台返回空字符串
func GetStoragePath() string {
	return ""
}
