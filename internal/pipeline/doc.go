// Package pipeline turns Markdown into a complete HTML document.
//
// Stages, in call order:
//   - PreprocessMarkdown normalizes line endings
//   - GoldmarkConverter renders the body; image references pass through an
//     ImageNormalizer, and in rasterized modes so do <img> tags inside raw
//     HTML (RewriteImageSources)
//   - StyleAggregator collects the stylesheets in cascade order
//   - Assembler fills the document template
//
// Rasterization and file output live in the root mdexport package.
package pipeline
