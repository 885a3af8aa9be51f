// Package scaffold copies the project template tree into a new project.
// The default tree is embedded in the binary; a directory on disk can replace
// it. Files ending in .tmpl are rendered with text/template, and
// gitignore.template becomes .gitignore.
package scaffold
