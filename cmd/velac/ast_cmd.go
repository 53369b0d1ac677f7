package main

import (
	"context"
	"fmt"

	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vela-lang/vela/ast"
)

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Parse a Vela source file and print its syntax tree",
	Long: `ast prints the typed AST the reference listener.TreeBuilder +
parser package combination produces — synthetic nodes from recovery
(*ast.Missing, *ast.Invalid) included, so the tree is always total even
over broken input (SPEC_FULL.md §5).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		src, filename, err := readSource(path)
		if err != nil {
			return fmt.Errorf("reading source: %w", err)
		}

		p := newParserFromFlags(string(src), filename)
		unit, _, err := p.Parse(context.Background())
		if err != nil {
			return err
		}

		node := unitToJSON(unit)
		if viper.GetString("format") == "json" {
			formatter := prettyjson.NewFormatter()
			formatter.DisabledColor = isNoColor()
			b, err := formatter.Marshal(node)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}

		printASTNode(node, 0)
		return nil
	},
}

// astNode is a generic, JSON-friendly projection of an ast.Node, built by
// hand-matching the concrete types rather than reflection — there are
// few enough of them that a type switch reads more plainly than a
// reflect-driven walk would.
type astNode struct {
	Type     string     `json:"type"`
	Value    string     `json:"value,omitempty"`
	Children []*astNode `json:"children,omitempty"`
}

func unitToJSON(unit *ast.CompilationUnit) *astNode {
	root := &astNode{Type: "CompilationUnit"}
	for _, d := range unit.Decls {
		root.Children = append(root.Children, declToJSON(d))
	}
	return root
}

func declToJSON(d ast.Decl) *astNode {
	switch n := d.(type) {
	case *ast.FunctionDecl:
		node := &astNode{Type: "FunctionDecl", Value: n.Name.String()}
		node.Children = append(node.Children, nodeToJSON(n.Public, "Public"))
		for _, p := range n.Params {
			node.Children = append(node.Children, &astNode{
				Type: "Param",
				Children: []*astNode{
					nodeToJSON(p.Type, "Type"),
					nodeToJSON(p.Name, "Name"),
				},
			})
		}
		node.Children = append(node.Children, nodeToJSON(n.ReturnType, "ReturnType"))
		node.Children = append(node.Children, bodyToJSON(n.Body))
		return node
	case *ast.Missing:
		return &astNode{Type: "Missing", Value: n.Rule}
	case *ast.Invalid:
		return &astNode{Type: "Invalid", Value: n.Token.Text}
	default:
		return &astNode{Type: fmt.Sprintf("%T", d)}
	}
}

func bodyToJSON(body ast.Node) *astNode {
	switch n := body.(type) {
	case *ast.Block:
		node := &astNode{Type: "Block"}
		for _, s := range n.Stmts {
			node.Children = append(node.Children, stmtToJSON(s))
		}
		return node
	case *ast.ExternalBody:
		return &astNode{Type: "ExternalBody"}
	default:
		return nodeToJSON(body, "")
	}
}

func stmtToJSON(s ast.Stmt) *astNode {
	switch n := s.(type) {
	case *ast.VarDecl:
		return &astNode{Type: "VarDecl", Children: []*astNode{
			nodeToJSON(n.Type, "Type"),
			nodeToJSON(n.Name, "Name"),
			nodeToJSON(n.Init, "Init"),
		}}
	case *ast.Assignment:
		return &astNode{Type: "Assignment", Children: []*astNode{
			nodeToJSON(n.Name, "Name"),
			nodeToJSON(n.Value, "Value"),
		}}
	default:
		return nodeToJSON(s, "")
	}
}

func exprToJSON(e ast.Expr) *astNode {
	switch n := e.(type) {
	case *ast.Literal:
		return &astNode{Type: "Literal", Value: n.Text}
	case *ast.Ident:
		return &astNode{Type: "Ident", Value: n.Name}
	case *ast.Paren:
		return &astNode{Type: "Paren", Children: []*astNode{exprToJSON(n.X)}}
	case *ast.Binary:
		return &astNode{Type: "Binary", Value: n.Op, Children: []*astNode{
			exprToJSON(n.X), exprToJSON(n.Y),
		}}
	default:
		return nodeToJSON(e, "")
	}
}

// nodeToJSON handles the node kinds shared across Decl/Stmt/Expr
// positions: *Empty, *Missing, *Invalid, or an Expr reached through one
// of the Node-typed fields above (Type, Name, Init, Value, ReturnType,
// Public all hold an ast.Node that is really an Expr or a sentinel).
func nodeToJSON(n ast.Node, label string) *astNode {
	switch v := n.(type) {
	case nil:
		return &astNode{Type: "nil"}
	case *ast.Empty:
		return &astNode{Type: "Empty"}
	case *ast.Missing:
		return &astNode{Type: "Missing", Value: v.Rule}
	case *ast.Invalid:
		return &astNode{Type: "Invalid", Value: v.Token.Text}
	case ast.Expr:
		return exprToJSON(v)
	default:
		return &astNode{Type: fmt.Sprintf("%T", n)}
	}
}

func printASTNode(n *astNode, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	if n.Value != "" {
		fmt.Printf("%s%s(%s)\n", indent, n.Type, n.Value)
	} else {
		fmt.Printf("%s%s\n", indent, n.Type)
	}
	for _, c := range n.Children {
		printASTNode(c, depth+1)
	}
}
