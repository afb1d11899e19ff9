package render

// Markdown renders markdown content for terminal display. Renderers come
// from the per-options pool, so the chat viewport and one-shot query paths
// never share a TermRenderer.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}

// MarkdownWithWidth renders with default options at the given wrap width.
// Chat bubbles use this; everything else builds Options explicitly.
func MarkdownWithWidth(content string, width int) (string, error) {
	opts := DefaultOptions().WithWidth(width)
	return Markdown(content, opts)
}
