package pipeline

import (
	"github.com/DeusData/semantic-ast-mcp/internal/normalize"
	"github.com/DeusData/semantic-ast-mcp/internal/store"
)

func nodeRows(project, relPath string, t *normalize.NodeTable) []store.NodeRow {
	rows := make([]store.NodeRow, len(t.Nodes))
	for i, n := range t.Nodes {
		rows[i] = store.NodeRow{
			Project:         project,
			File:            relPath,
			NodeID:          int64(n.ID),
			ParentID:        int64(n.ParentID),
			NativeType:      n.NativeType,
			SemanticType:    int64(n.Type),
			Name:            n.Name,
			Flags:           int64(n.Flags),
			StartByte:       int64(n.StartByte),
			EndByte:         int64(n.EndByte),
			StartLine:       int64(n.StartLine),
			StartCol:        int64(n.StartCol),
			EndLine:         int64(n.EndLine),
			EndCol:          int64(n.EndCol),
			Depth:           int64(n.Depth),
			SiblingIndex:    int64(n.SiblingIndex),
			ChildCount:      int64(n.ChildCount),
			DescendantCount: int64(n.DescendantCount),
		}
	}
	return rows
}

func edgeRows(project, relPath string, t *normalize.NodeTable) []store.EdgeRow {
	rows := make([]store.EdgeRow, len(t.Edges))
	for i, e := range t.Edges {
		rows[i] = store.EdgeRow{
			Project:  project,
			File:     relPath,
			SourceID: int64(e.Source),
			TargetID: int64(e.Target),
			Kind:     string(e.Kind),
		}
	}
	return rows
}
