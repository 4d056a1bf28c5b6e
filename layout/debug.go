package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将指令序列输出为 JSON，便于调试或比对两次排版结果。
func WriteDebugJSON(instructions []Instruction, path string) error {
	data, err := json.MarshalIndent(instructions, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
