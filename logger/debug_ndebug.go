//go:build ndebug

package logger

const debugEnabled = false
