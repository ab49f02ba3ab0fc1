/*
Theme writes the plotting theme, a vega-lite config object, as json.
Give it to vega-lite / altair, or to rmsdsum -t after editing.
*/
package main
