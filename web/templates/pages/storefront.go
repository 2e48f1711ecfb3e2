package pages

import (
	"context"
	"encoding/json"
	"io"

	"photo-storefront/internal/models"
	"photo-storefront/web/templates/components"

	"github.com/a-h/templ"
)

// PanelID is the element the HTMX requests swap
const PanelID = "panel"

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// hx attributes shared by every panel form
const panelSwap = `hx-target="#panel" hx-swap="outerHTML"`

// StorefrontPage renders the whole document around the panel
func StorefrontPage(view models.StorefrontView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		headers, err := json.Marshal(map[string]string{"X-CSRF-Token": view.CSRFToken})
		if err != nil {
			return err
		}

		hw := components.NewHTMLWriter(w)
		hw.Raw(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>Painel de Fotos</title>
	<link rel="stylesheet" href="/static/css/storefront.css">
	<script src="` + htmxScript + `"></script>
</head>
`)
		hw.Rawf(`<body hx-headers="%s">`+"\n", components.Attr(string(headers)))
		hw.Raw(`<main class="p-6 max-w-7xl mx-auto">` + "\n")
		if err := hw.Err(); err != nil {
			return err
		}
		if err := Panel(view).Render(ctx, w); err != nil {
			return err
		}
		hw.Raw("</main>\n</body>\n</html>\n")
		return hw.Err()
	})
}

// Panel renders the tab bar, the active section and the cart panel. It is
// both the body of the page and the HTMX swap target.
func Panel(view models.StorefrontView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewHTMLWriter(w)
		hw.Rawf(`<div id="%s">`+"\n", PanelID)
		writeTabBar(hw, view)
		writeMessages(hw, view)

		switch view.ActiveTab {
		case models.TabAbout:
			writeAbout(hw)
		case models.TabContact:
			writeContact(hw, view.ContactEmail)
		default:
			if view.ShowCheckout {
				writeCheckout(hw, view)
			} else {
				writePhotoGrid(hw, view)
			}
		}

		if view.ShowCartPanel {
			writeCartPanel(hw, view)
		}

		hw.Raw("</div>\n")
		return hw.Err()
	})
}

func writeTabBar(hw *components.HTMLWriter, view models.StorefrontView) {
	hw.Raw(`<header class="flex justify-center gap-4 mb-6" role="tablist">` + "\n")
	for _, tab := range view.Tabs {
		variant := "btn-outline"
		selected := "false"
		if tab == view.ActiveTab {
			variant = "btn-default"
			selected = "true"
		}
		hw.Rawf(`<form method="post" action="/tabs/%[1]s" hx-post="/tabs/%[1]s" %[2]s>`, components.Attr(string(tab)), panelSwap)
		writeCSRFField(hw, view.CSRFToken)
		hw.Rawf(`<button type="submit" role="tab" aria-selected="%s" class="btn %s">`, selected, variant)
		hw.Text(tab.Label())
		hw.Raw("</button></form>\n")
	}
	hw.Raw("</header>\n")
}

func writeMessages(hw *components.HTMLWriter, view models.StorefrontView) {
	hw.Raw(`<div id="messages" aria-live="polite">`)
	if view.Flash != "" {
		hw.Raw(`<div class="bg-green-50 border border-green-200 text-green-800 p-4 rounded-lg mb-4" role="status"><p class="text-sm">`)
		hw.Text(view.Flash)
		hw.Raw(`</p></div>`)
	}
	if view.Error != "" {
		hw.Raw(`<div class="bg-red-50 border border-red-200 text-red-800 p-4 rounded-lg mb-4" role="alert"><p class="text-sm">`)
		hw.Text(view.Error)
		hw.Raw(`</p></div>`)
	}
	hw.Raw("</div>\n")
}

func writePhotoGrid(hw *components.HTMLWriter, view models.StorefrontView) {
	hw.Raw(`<div class="grid sm:grid-cols-2 md:grid-cols-3 lg:grid-cols-4 gap-6">` + "\n")
	for _, photo := range view.Photos {
		hw.Rawf(`<article class="card relative group shadow-md rounded-2xl overflow-hidden" data-photo-id="%s">`, components.Attr(photo.ID))
		hw.Rawf(`<div class="h-48 overflow-hidden"><img src="%s" alt="%s" class="w-full h-full object-cover"></div>`,
			components.Attr(photo.ImageURL), components.Attr(photo.Name))
		hw.Raw(`<div class="p-4"><h2 class="font-semibold text-lg mb-1">`)
		hw.Text(photo.Name)
		hw.Raw(`</h2><p class="text-sm text-gray-600 mb-2">`)
		hw.Text(photo.Description)
		hw.Raw(`</p><div class="flex justify-between items-center">`)

		switch {
		case photo.Unlocked:
			hw.Raw(`<span class="text-green-600 font-semibold">&#10003; Liberada</span>`)
		default:
			hw.Rawf(`<form method="post" action="/cart/add" hx-post="/cart/add" %s>`, panelSwap)
			writeCSRFField(hw, view.CSRFToken)
			hw.Rawf(`<input type="hidden" name="photo_id" value="%s">`, components.Attr(photo.ID))
			if photo.InCart {
				hw.Raw(`<button type="submit" class="btn btn-secondary btn-sm" disabled>No carrinho</button>`)
			} else {
				hw.Raw(`<button type="submit" class="btn btn-secondary btn-sm">&#128722; `)
				hw.Text(photo.PriceLabel)
				hw.Raw(`</button>`)
			}
			hw.Raw(`</form>`)
		}

		hw.Raw("</div></div></article>\n")
	}
	hw.Raw("</div>\n")
}

func writeCartPanel(hw *components.HTMLWriter, view models.StorefrontView) {
	hw.Raw(`<aside id="cart" class="fixed bottom-4 right-4 bg-white border shadow-lg p-4 rounded-2xl w-72">` + "\n")
	hw.Raw(`<h2 class="text-lg font-semibold mb-2">Carrinho</h2><ul class="mb-2 max-h-40 overflow-y-auto">` + "\n")
	for _, line := range view.Cart {
		hw.Raw(`<li class="flex justify-between text-sm mb-1 items-center"><span>`)
		hw.Text(line.Name)
		hw.Raw(`</span>`)
		hw.Rawf(`<form method="post" action="/cart/remove/%[1]s" hx-post="/cart/remove/%[1]s" %[2]s>`, components.Attr(line.PhotoID), panelSwap)
		writeCSRFField(hw, view.CSRFToken)
		hw.Rawf(`<button type="submit" class="btn btn-ghost btn-icon" aria-label="Remover %s">&#10005;</button></form></li>`+"\n", components.Attr(line.Name))
	}
	hw.Raw("</ul>\n")
	hw.Raw(`<p class="text-sm font-semibold mb-2">Total: `)
	hw.Text(view.CartTotal)
	hw.Raw("</p>\n")
	hw.Rawf(`<form method="post" action="/checkout" hx-post="/checkout" %s>`, panelSwap)
	writeCSRFField(hw, view.CSRFToken)
	hw.Raw(`<button type="submit" class="btn btn-default w-full">Finalizar Pedido</button></form>` + "\n")
	hw.Raw("</aside>\n")
}

func writeCheckout(hw *components.HTMLWriter, view models.StorefrontView) {
	hw.Raw(`<section id="checkout" class="max-w-md mx-auto mt-8 bg-white shadow p-6 rounded-xl">` + "\n")
	hw.Raw(`<h2 class="text-xl font-semibold mb-4">Finalizar Compra</h2>` + "\n")
	hw.Rawf(`<form method="post" action="/checkout/complete" hx-post="/checkout/complete" %s>`+"\n", panelSwap)
	writeCSRFField(hw, view.CSRFToken)
	hw.Rawf(`<input type="email" name="email" value="%s" placeholder="Seu email para receber as fotos" class="w-full mb-4 p-2 border rounded" hx-post="/checkout/email" hx-trigger="change" hx-swap="none">`+"\n",
		components.Attr(view.Email))
	hw.Raw(`<ul class="mb-4">` + "\n")
	for _, line := range view.Cart {
		hw.Raw(`<li class="flex justify-between text-sm mb-1"><span>`)
		hw.Text(line.Name)
		hw.Raw(`</span><span>`)
		hw.Text(line.PriceLabel)
		hw.Raw("</span></li>\n")
	}
	hw.Raw("</ul>\n")
	hw.Raw(`<p class="text-sm font-semibold mb-4">Total: `)
	hw.Text(view.CartTotal)
	hw.Raw("</p>\n")
	hw.Raw(`<button type="submit" class="btn btn-default w-full">Pagar Agora (simulado)</button>` + "\n")
	hw.Raw("</form>\n")
	hw.Rawf(`<form method="post" action="/checkout/cancel" hx-post="/checkout/cancel" %s class="mt-2">`, panelSwap)
	writeCSRFField(hw, view.CSRFToken)
	hw.Raw(`<button type="submit" class="btn btn-outline w-full">Voltar</button></form>` + "\n")
	hw.Raw("</section>\n")
}

func writeAbout(hw *components.HTMLWriter) {
	hw.Raw(`<section class="text-center text-gray-700 mt-10 max-w-2xl mx-auto">
<h2 class="text-2xl font-bold mb-4">Sobre</h2>
<p>Bem-vindo à nossa plataforma de venda de fotos! Aqui você encontra registros incríveis
de momentos únicos. Nossa missão é entregar qualidade, praticidade e emoção através da fotografia.</p>
</section>
`)
}

func writeContact(hw *components.HTMLWriter, email string) {
	hw.Raw(`<section class="text-center text-gray-700 mt-10 max-w-2xl mx-auto">
<h2 class="text-2xl font-bold mb-4">Contato</h2>
<p>Dúvidas ou sugestões? Entre em contato conosco pelo e-mail `)
	hw.Rawf(`<a href="mailto:%[1]s" class="text-blue-600 font-semibold ml-1">%[1]s</a>`, components.Attr(email))
	hw.Raw(`. Estamos prontos para te ajudar!</p>
</section>
`)
}

func writeCSRFField(hw *components.HTMLWriter, token string) {
	if token == "" {
		return
	}
	hw.Rawf(`<input type="hidden" name="csrf_token" value="%s">`, components.Attr(token))
}
