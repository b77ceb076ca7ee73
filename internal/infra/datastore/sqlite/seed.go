package sqlite

import "github.com/kawabatas/songbook/internal/domain/model"

func ptr(s string) *string { return &s }

// SampleSongs are inserted by Seed into an empty table.
var SampleSongs = []model.SongInput{
	{
		SongName:      "Pies Descalzos, Sueños Blancos",
		ArtistName:    "Shakira",
		LyricsSpanish: "[Coro]\nPerteneciste a una raza antigua\nDe pies descalzos\nY de sueños blancos",
		LyricsEnglish: ptr("[Chorus]\nYou belonged to an ancient race\nOf bare feet\nAnd white dreams"),
		LyricsGerman:  ptr("[Refrain]\nDu gehörtest zu einer alten Rasse\nMit nackten Füßen\nUnd weißen Träumen"),
		YoutubeLink:   "https://www.youtube.com/watch?v=eCna-hsmGUY",
	},
	{
		SongName:      "DtMF",
		ArtistName:    "Bad Bunny",
		LyricsSpanish: "[Intro]\nSal de aquí\nHey, hey",
		LyricsEnglish: ptr("[Intro]\nGet out of here\nHey, hey"),
		LyricsGerman:  ptr("[Intro]\nGeh hier raus\nHey, hey"),
		YoutubeLink:   "https://www.youtube.com/watch?v=4X4uckVyk9o",
	},
	{
		SongName:      "Canta y No Llores",
		ArtistName:    "Tuna Decana de Madrid",
		LyricsSpanish: "Ese lunar que tienes, cielito lindo, junto a la boca\nNo se lo des a nadie, cielito lindo, que a mí me toca",
		LyricsEnglish: ptr("That beauty mark you have, pretty little sky, next to your mouth\nDon't give it to anyone, pretty little sky, it belongs to me"),
		LyricsGerman:  ptr("Dieses Muttermal, das du hast, himmlisches Liebchen, neben dem Mund\nGib es niemandem, himmlisches Liebchen, es gehört mir"),
		YoutubeLink:   "https://www.youtube.com/watch?v=y1YqflmkOk4",
	},
	{
		SongName:      "Las Aventuras de Ivan",
		ArtistName:    "TONY SOPRANOV BAND",
		LyricsSpanish: "\"Las Aventuras de Iván\"",
		LyricsEnglish: ptr("\"The Adventures of Iván\""),
		LyricsGerman:  ptr("\"Die Abenteuer von Iván\""),
		YoutubeLink:   "https://www.youtube.com/watch?v=ZWmPFsnDYNw",
	},
}
