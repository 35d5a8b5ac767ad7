package ast

import (
	"spark-lang/internal/span"
	"spark-lang/internal/token"
)

// NodeToMap converts an AST node to a map suitable for JSON serialization.
// This produces a tagged-union structure: every node has a "kind" field.
func NodeToMap(node Expr) map[string]interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *NumberExpr:
		return m("NumberExpr", n.Span, "value", n.Value)
	case *IdentExpr:
		return m("IdentExpr", n.Span, "name", n.Name)
	case *VarAssignExpr:
		return m("VarAssignExpr", n.Span,
			"name", n.Name,
			"value", NodeToMap(n.Value))
	case *UnaryExpr:
		return m("UnaryExpr", n.Span, "op", opStr(n.Op), "operand", NodeToMap(n.Operand))
	case *BinaryExpr:
		return m("BinaryExpr", n.Span,
			"op", opStr(n.Op),
			"left", NodeToMap(n.Left),
			"right", NodeToMap(n.Right))
	case *IfExpr:
		cases := make([]interface{}, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = map[string]interface{}{
				"kind": "IfCase",
				"cond": NodeToMap(c.Cond),
				"body": NodeToMap(c.Body),
			}
		}
		result := m("IfExpr", n.Span, "cases", cases)
		if n.Else != nil {
			result["else"] = NodeToMap(n.Else)
		}
		return result
	case *ForExpr:
		result := m("ForExpr", n.Span,
			"varName", n.VarName,
			"start", NodeToMap(n.Start),
			"end", NodeToMap(n.End),
			"body", NodeToMap(n.Body))
		if n.Step != nil {
			result["step"] = NodeToMap(n.Step)
		}
		return result
	case *WhileExpr:
		return m("WhileExpr", n.Span,
			"cond", NodeToMap(n.Cond),
			"body", NodeToMap(n.Body))
	default:
		return map[string]interface{}{"kind": "Unknown"}
	}
}

// ---- helpers ----

// m builds a map with kind, span, and extra key-value pairs.
func m(kind string, s span.Span, kvs ...interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"kind": kind,
		"span": spanToMap(s),
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		key := kvs[i].(string)
		result[key] = kvs[i+1]
	}
	return result
}

func spanToMap(s span.Span) map[string]interface{} {
	return map[string]interface{}{
		"start": map[string]interface{}{
			"offset": s.Start.Offset,
			"line":   s.Start.Line,
			"column": s.Start.Column,
		},
		"end": map[string]interface{}{
			"offset": s.End.Offset,
			"line":   s.End.Line,
			"column": s.End.Column,
		},
	}
}

func opStr(kind token.Kind) string {
	return kind.String()
}
