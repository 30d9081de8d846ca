// Package engine implements the template directive interpreter. It walks a
// cloned HTML fragment and mutates it in place against a scope.Context:
// placeholders are replaced by rendered values, conditionals keep or drop
// their children, loops repeat their children under derived contexts and
// attribute bindings are resolved into plain attributes.
//
// Two directive notations are supported and can be combined:
//
//	Directives (default tags shown)
//	  <jv>comment.author</jv>                 text
//	  <jv html>comment.text</jv>              raw markup, not sanitised
//	  <jv date>comment.when</jv>              formatted with the DateFormatter
//	  <a jv-href="comment.url">               attribute binding
//	  <jv-if cond="has_comments" [not]>       conditional
//	  <jv-for items="comments" item="comment" [index="i"]>
//
//	Markers
//	  <jtvar count></jtvar>                   placeholder
//	  <div jtvar="comments"></div>            element content binding
//	  <a href="jtvar url">                    attribute binding
//
// A render pass is synchronous and never fails: unresolvable paths render
// as empty, malformed directives resolve to nothing and invalid dates fall
// back to their raw input. After a pass no directive markers remain.
//
// Conditionals resolve their children before lifting them into the parent,
// so the directive node keeps its position while nested directives run.
package engine
