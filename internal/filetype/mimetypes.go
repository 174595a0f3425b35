package filetype

// mimetypes the known mimetypes of every category, in scan order
var mimetypes = []category{
	{
		filetype:  PDF,
		mimetypes: []string{
			"application/pdf",
		},
	},
	{
		filetype:  Document,
		mimetypes: []string{
			"application/msword",
			"application/vnd.oasis.opendocument.text",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"application/x-abiword",
		},
	},
	{
		filetype:  Presentation,
		mimetypes: []string{
			"application/vnd.ms-powerpoint",
			"application/vnd.oasis.opendocument.presentation",
			"application/vnd.openxmlformats-officedocument.presentationml.presentation",
		},
	},
	{
		filetype:  Spreadsheet,
		mimetypes: []string{
			"text/csv",
			"application/vnd.ms-excel",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"application/vnd.oasis.opendocument.spreadsheet",
		},
	},
	{
		filetype:  Image,
		mimetypes: []string{
			"image/aces",
			"image/bmp",
			"image/cgm",
			"image/emf",
			"image/example",
			"image/fits",
			"image/g3fax",
			"image/gif",
			"image/icns",
			"image/ief",
			"image/jp2",
			"image/jpeg",
			"image/jpm",
			"image/jpx",
			"image/naplps",
			"image/nitf",
			"image/png",
			"image/prs.btif",
			"image/prs.pti",
			"image/svg+xml",
			"image/t38",
			"image/tiff",
			"image/tiff-fx",
			"image/vnd.adobe.photoshop",
			"image/vnd.adobe.premiere",
			"image/vnd.cns.inf2",
			"image/vnd.djvu",
			"image/vnd.dwg",
			"image/vnd.dxb",
			"image/vnd.dxf",
			"image/vnd.fastbidsheet",
			"image/vnd.fpx",
			"image/vnd.fst",
			"image/vnd.fujixerox.edmics-mmr",
			"image/vnd.fujixerox.edmics-rlc",
			"image/vnd.globalgraphics.pgb",
			"image/vnd.microsoft.icon",
			"image/vnd.mix",
			"image/vnd.ms-modi",
			"image/vnd.net-fpx",
			"image/vnd.radiance",
			"image/vnd.sealed.png",
			"image/vnd.sealedmedia.softseal.gif",
			"image/vnd.sealedmedia.softseal.jpg",
			"image/vnd.svf",
			"image/vnd.wap.wbmp",
			"image/vnd.xiff",
			"image/vnd.zbrush.dcx",
			"image/vnd.zbrush.pcx",
			"image/webp",
			"image/wmf",
			"image/x-bpg",
			"image/x-cmu-raster",
			"image/x-cmx",
			"image/x-dpx",
			"image/x-emf-compressed",
			"image/x-freehand",
			"image/x-jbig2",
			"image/x-jp2-codestream",
			"image/x-jp2-container",
			"image/x-niff",
			"image/x-pict",
			"image/x-portable-anymap",
			"image/x-portable-bitmap",
			"image/x-portable-graymap",
			"image/x-portable-pixmap",
			"image/x-raw-adobe",
			"image/x-raw-canon",
			"image/x-raw-casio",
			"image/x-raw-epson",
			"image/x-raw-fuji",
			"image/x-raw-hasselblad",
			"image/x-raw-imacon",
			"image/x-raw-kodak",
			"image/x-raw-leaf",
			"image/x-raw-logitech",
			"image/x-raw-mamiya",
			"image/x-raw-minolta",
			"image/x-raw-nikon",
			"image/x-raw-olympus",
			"image/x-raw-panasonic",
			"image/x-raw-pentax",
			"image/x-raw-phaseone",
			"image/x-raw-rawzor",
			"image/x-raw-red",
			"image/x-raw-sigma",
			"image/x-raw-sony",
			"image/x-rgb",
			"image/x-tga",
			"image/x-xbitmap",
			"image/x-xcf",
			"image/x-xpixmap",
			"image/x-xwindowdump",
		},
	},
	{
		filetype:  Video,
		mimetypes: []string{
			"video/3gpp",
			"video/3gpp-tt",
			"video/3gpp2",
			"video/bmpeg",
			"video/bt656",
			"video/celb",
			"video/daala",
			"video/dv",
			"video/example",
			"video/h261",
			"video/h263",
			"video/h263-1998",
			"video/h263-2000",
			"video/h264",
			"video/jpeg",
			"video/jpeg2000",
			"video/mj2",
			"video/mp1s",
			"video/mp2p",
			"video/mp2t",
			"video/mp4",
			"video/mp4v-es",
			"video/mpeg",
			"video/mpeg4-generic",
			"video/mpv",
			"video/nv",
			"video/ogg",
			"video/parityfec",
			"video/pointer",
			"video/quicktime",
			"video/raw",
			"video/rtp-enc-aescm128",
			"video/rtx",
			"video/smpte292m",
			"video/theora",
			"video/ulpfec",
			"video/vc1",
			"video/vnd.cctv",
			"video/vnd.dlna.mpeg-tts",
			"video/vnd.fvt",
			"video/vnd.hns.video",
			"video/vnd.iptvforum.1dparityfec-1010",
			"video/vnd.iptvforum.1dparityfec-2005",
			"video/vnd.iptvforum.2dparityfec-1010",
			"video/vnd.iptvforum.2dparityfec-2005",
			"video/vnd.iptvforum.ttsavc",
			"video/vnd.iptvforum.ttsmpeg2",
			"video/vnd.motorola.video",
			"video/vnd.motorola.videop",
			"video/vnd.mpegurl",
			"video/vnd.ms-playready.media.pyv",
			"video/vnd.nokia.interleaved-multimedia",
			"video/vnd.nokia.videovoip",
			"video/vnd.objectvideo",
			"video/vnd.sealed.mpeg1",
			"video/vnd.sealed.mpeg4",
			"video/vnd.sealed.swf",
			"video/vnd.sealedmedia.softseal.mov",
			"video/vnd.vivo",
			"video/webm",
			"video/x-dirac",
			"video/x-f4v",
			"video/x-flc",
			"video/x-fli",
			"video/x-flv",
			"video/x-jng",
			"video/x-m4v",
			"video/x-matroska",
			"video/x-mng",
			"video/x-ms-asf",
			"video/x-ms-wm",
			"video/x-ms-wmv",
			"video/x-ms-wmx",
			"video/x-ms-wvx",
			"video/x-msvideo",
			"video/x-oggrgb",
			"video/x-ogguvs",
			"video/x-oggyuv",
			"video/x-ogm",
			"video/x-sgi-movie",
		},
	},
	{
		filetype:  Audio,
		mimetypes: []string{
			"audio/3gpp",
			"audio/3gpp2",
			"audio/ac3",
			"audio/adpcm",
			"audio/amr",
			"audio/amr-wb",
			"audio/amr-wb+",
			"audio/asc",
			"audio/basic",
			"audio/bv16",
			"audio/bv32",
			"audio/clearmode",
			"audio/cn",
			"audio/dat12",
			"audio/dls",
			"audio/dsr-es201108",
			"audio/dsr-es202050",
			"audio/dsr-es202211",
			"audio/dsr-es202212",
			"audio/dvi4",
			"audio/eac3",
			"audio/evrc",
			"audio/evrc-qcp",
			"audio/evrc0",
			"audio/evrc1",
			"audio/evrcb",
			"audio/evrcb0",
			"audio/evrcb1",
			"audio/evrcwb",
			"audio/evrcwb0",
			"audio/evrcwb1",
			"audio/example",
			"audio/g719",
			"audio/g722",
			"audio/g7221",
			"audio/g723",
			"audio/g726-16",
			"audio/g726-24",
			"audio/g726-32",
			"audio/g726-40",
			"audio/g728",
			"audio/g729",
			"audio/g7291",
			"audio/g729d",
			"audio/g729e",
			"audio/gsm",
			"audio/gsm-efr",
			"audio/ilbc",
			"audio/l16",
			"audio/l20",
			"audio/l24",
			"audio/l8",
			"audio/lpc",
			"audio/midi",
			"audio/mobile-xmf",
			"audio/mp4",
			"audio/mp4a-latm",
			"audio/mpa",
			"audio/mpa-robust",
			"audio/mpeg",
			"audio/mpeg4-generic",
			"audio/ogg",
			"audio/opus",
			"audio/parityfec",
			"audio/pcma",
			"audio/pcma-wb",
			"audio/pcmu",
			"audio/pcmu-wb",
			"audio/prs.sid",
			"audio/qcelp",
			"audio/red",
			"audio/rtp-enc-aescm128",
			"audio/rtp-midi",
			"audio/rtx",
			"audio/smv",
			"audio/smv-qcp",
			"audio/smv0",
			"audio/sp-midi",
			"audio/speex",
			"audio/t140c",
			"audio/t38",
			"audio/telephone-event",
			"audio/tone",
			"audio/ulpfec",
			"audio/vdvi",
			"audio/vmr-wb",
			"audio/vnd.3gpp.iufp",
			"audio/vnd.4sb",
			"audio/vnd.adobe.soundbooth",
			"audio/vnd.audiokoz",
			"audio/vnd.celp",
			"audio/vnd.cisco.nse",
			"audio/vnd.cmles.radio-events",
			"audio/vnd.cns.anp1",
			"audio/vnd.cns.inf1",
			"audio/vnd.digital-winds",
			"audio/vnd.dlna.adts",
			"audio/vnd.dolby.heaac.1",
			"audio/vnd.dolby.heaac.2",
			"audio/vnd.dolby.mlp",
			"audio/vnd.dolby.mps",
			"audio/vnd.dolby.pl2",
			"audio/vnd.dolby.pl2x",
			"audio/vnd.dolby.pl2z",
			"audio/vnd.dts",
			"audio/vnd.dts.hd",
			"audio/vnd.everad.plj",
			"audio/vnd.hns.audio",
			"audio/vnd.lucent.voice",
			"audio/vnd.ms-playready.media.pya",
			"audio/vnd.nokia.mobile-xmf",
			"audio/vnd.nortel.vbk",
			"audio/vnd.nuera.ecelp4800",
			"audio/vnd.nuera.ecelp7470",
			"audio/vnd.nuera.ecelp9600",
			"audio/vnd.octel.sbc",
			"audio/vnd.qcelp",
			"audio/vnd.rhetorex.32kadpcm",
			"audio/vnd.sealedmedia.softseal.mpeg",
			"audio/vnd.vmx.cvsd",
			"audio/vnd.wave",
			"audio/vorbis",
			"audio/vorbis-config",
			"audio/x-aac",
			"audio/x-adpcm",
			"audio/x-aiff",
			"audio/x-caf",
			"audio/x-dec-adpcm",
			"audio/x-dec-basic",
			"audio/x-flac",
			"audio/x-matroska",
			"audio/x-mod",
			"audio/x-mpegurl",
			"audio/x-ms-wax",
			"audio/x-ms-wma",
			"audio/x-oggflac",
			"audio/x-oggpcm",
			"audio/x-pn-realaudio",
			"audio/x-pn-realaudio-plugin",
		},
	},
	{
		filetype:  Archive,
		mimetypes: []string{
			"application/x-freearc",
			"application/x-bzip",
			"application/x-bzip2",
			"application/gzip",
			"application/x-tar",
			"application/zip",
			"application/x-7z-compressed",
		},
	},
}
