package keyfile

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Extension 密钥文件扩展名
const Extension = ".json"

// DefaultPath 返回默认的密钥文件名 <address>.json（当前目录）
func DefaultPath(address string) string {
	return address + Extension
}

// IndexedPath 在文件名与扩展名之间插入序号
//
//	IndexedPath("keys/wallet.json", 2) == "keys/wallet-2.json"
//	IndexedPath("wallet", 3)           == "wallet-3"
func IndexedPath(base string, index int) string {
	dir, name := filepath.Split(base)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return dir + stem + "-" + strconv.Itoa(index) + ext
}

// ReportPath 返回文本报告路径：替换扩展名为 .txt
//
//	ReportPath("wallet.json") == "wallet.txt"
//	ReportPath("wallet.txt")  == "wallet.report.txt"
func ReportPath(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	if ext == ".txt" {
		return stem + ".report.txt"
	}
	return stem + ".txt"
}
