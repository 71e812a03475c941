package site

import (
	_ "embed"
)

// AssetVersion identifies the embedded application (stylesheet, script, body markup).
// Bump it whenever anything under assets/ changes.
const AssetVersion = "2.1.0"

var (
	//go:embed assets/app.js
	appScript string

	//go:embed assets/styles.css
	stylesheet string

	//go:embed assets/body.html
	bodyMarkup string
)

// tailwindConfig extends the CDN build with the strawberry palette and class-based dark mode.
const tailwindConfig = `tailwind.config = {
    darkMode: 'class',
    theme: {
        extend: {
            colors: {
                strawberry: {
                    50: '#fff1f2',
                    100: '#ffe4e6',
                    500: '#f43f5e',
                    600: '#e11d48',
                    700: '#be123c',
                    900: '#881337',
                }
            }
        }
    }
}`
