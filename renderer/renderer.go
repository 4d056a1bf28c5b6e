package renderer

import "github.com/ByLCY/printer/layout"

// Renderer 是字形放置原语：Place 把一个字形印到画布上（只追加、不失败），
// Render 返回最终输出的二进制数据（例如 PDF 字节切片）以及可能的错误。
type Renderer interface {
	Place(p layout.Placement)
	Render() ([]byte, error)
}
