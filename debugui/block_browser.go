package debugui

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/field"
)

type BlockInfo struct {
	ID    field.BlockID
	Row   int
	Col   int
	Color color.RGBA
}

type blockCacheKey struct {
	spawned, locked, lines int
}

type BlockBrowser struct {
	blocks        []BlockInfo
	key           blockCacheKey
	sortColumn    int
	sortAscending bool

	selected      field.BlockID
	filterText    string
	blocksPerPage int
	currentPage   int
}

func NewBlockBrowser(blocksPerPage int) *BlockBrowser {
	return &BlockBrowser{
		key:           blockCacheKey{spawned: -1},
		sortAscending: true,
		blocksPerPage: blocksPerPage,
	}
}

// collectBlocks lists the settled blocks of s in row-major order.
func collectBlocks(s engine.Snapshot) []BlockInfo {
	out := make([]BlockInfo, 0, len(s.Cells))
	for i, c := range s.Cells {
		if c.Empty() {
			continue
		}
		out = append(out, BlockInfo{
			ID:    c.ID,
			Row:   i / s.Columns,
			Col:   i % s.Columns,
			Color: c.Color,
		})
	}
	return out
}

func (bb *BlockBrowser) Render(s engine.Snapshot) {
	if !imgui.BeginV("Block Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	bb.rebuildCacheIfNeeded(s)

	imgui.InputTextWithHint("##search", "Search...", &bb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		bb.filterText = ""
		bb.currentPage = 0
	}

	filtered := bb.filtered()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("BlockTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Block ID")
		imgui.TableSetupColumn("Row")
		imgui.TableSetupColumn("Column")
		imgui.TableSetupColumn("Color")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			bb.sortColumn = int(spec.ColumnIndex())
			bb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			bb.sortBlocks()
			filtered = bb.filtered()
			sortSpecs.SetSpecsDirty(false)
		}

		start := min(bb.currentPage*bb.blocksPerPage, len(filtered))
		end := min(start+bb.blocksPerPage, len(filtered))

		for _, b := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", b.ID), bb.selected == b.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				bb.selected = b.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", b.Row))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", b.Col))

			imgui.TableNextColumn()
			imgui.PushStyleColorVec4(imgui.ColText, rgbaVec4(b.Color))
			imgui.Text(fmt.Sprintf("■ #%02X%02X%02X", b.Color.R, b.Color.G, b.Color.B))
			imgui.PopStyleColor()
		}

		imgui.EndTable()
	}

	if len(filtered) > bb.blocksPerPage {
		totalPages := (len(filtered) + bb.blocksPerPage - 1) / bb.blocksPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d blocks)", bb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && bb.currentPage > 0 {
			bb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && bb.currentPage < totalPages-1 {
			bb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d blocks", len(filtered)))
	}

	imgui.End()
}

// Selected returns the block last clicked in the table, or zero.
func (bb *BlockBrowser) Selected() field.BlockID {
	return bb.selected
}

// The field only changes when a piece locks, rows clear or the engine resets.
func (bb *BlockBrowser) rebuildCacheIfNeeded(s engine.Snapshot) {
	key := blockCacheKey{
		spawned: s.Stats.Spawned,
		locked:  s.Stats.Locked,
		lines:   s.Stats.LinesCleared,
	}
	if key == bb.key && bb.blocks != nil {
		return
	}
	bb.key = key
	bb.blocks = collectBlocks(s)
	bb.sortBlocks()

	if bb.currentPage*bb.blocksPerPage >= len(bb.blocks) {
		bb.currentPage = 0
	}
}

func (bb *BlockBrowser) sortBlocks() {
	sort.SliceStable(bb.blocks, func(i, j int) bool {
		a, b := bb.blocks[i], bb.blocks[j]
		var less bool

		switch bb.sortColumn {
		case 1:
			less = a.Row < b.Row
		case 2:
			less = a.Col < b.Col
		case 3:
			less = colorKey(a.Color) < colorKey(b.Color)
		default:
			less = a.ID < b.ID
		}

		if !bb.sortAscending {
			return !less
		}
		return less
	})
}

func (bb *BlockBrowser) filtered() []BlockInfo {
	if bb.filterText == "" {
		return bb.blocks
	}

	out := make([]BlockInfo, 0, len(bb.blocks))
	filterLower := strings.ToLower(bb.filterText)

	for _, b := range bb.blocks {
		idStr := fmt.Sprintf("%d", b.ID)
		posStr := fmt.Sprintf("%d,%d", b.Row, b.Col)
		colorStr := fmt.Sprintf("#%02x%02x%02x", b.Color.R, b.Color.G, b.Color.B)

		if !strings.Contains(idStr, filterLower) &&
			!strings.Contains(posStr, filterLower) &&
			!strings.Contains(colorStr, filterLower) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func colorKey(c color.RGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func rgbaVec4(c color.RGBA) imgui.Vec4 {
	return imgui.NewVec4(float32(c.R)/255.0, float32(c.G)/255.0, float32(c.B)/255.0, 1.0)
}
