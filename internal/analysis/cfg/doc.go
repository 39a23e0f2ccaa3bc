// # Description
//
// Package cfg builds Control Flow Graphs (CFG) for Java method bodies and
// indexes which parts of them may throw.
//
// ## Control Flow Graph (CFG)
//
// A CFG is a representation, using graph notation, of all paths that might be traversed
// through a method during its execution. In a CFG:
//
//   - Each node in the graph represents a basic block (a straight-line piece of code without any jumps).
//   - The directed edges represent jumps in the control flow. Conditional jumps are
//     labeled true or false, and the jumps into catch clauses are exceptional edges.
//
// ## Package Functionality
//
//  1. CFG Construction: use `Build` to construct the graph of a method declaration.
//  2. Exception index: `IndexThrows` records, per block and per exceptional edge,
//     the exception types that may be raised there. Blocks that cannot throw
//     have no entry, so the index stays sparse.
//  3. Use `Graph.WriteDot` to render the graph with Graphviz.
package cfg
