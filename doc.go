/*
Package udimgen parses texture manifests and writes the makefile fragment that
drives UDIM mip generation.

A manifest lists one texture per line: a filename followed by optional flags
(-ao, -nrm, -spec, -highprec). Each texture is classified from its filename,
its flags are interpreted, and the writer emits a variable block listing every
input plus one rule per texture.

Reader example:

	m, err := udimgen.DecodeFile("textures.txt", nil)
	if err != nil {
		// handle error
	}

Writer example:

	out, err := udimgen.Format(m, nil)
	if err != nil {
		// handle error
	}

Validator example:

	issues := udimgen.Validate(m, nil)
	if udimgen.HasErrors(issues) {
		// handle validation issues
	}

Single line example:

	tex, err := udimgen.ParseLine("hairpin_001_nrm_1001.tga -nrm -highprec")
	if err == nil {
		_ = tex.Command().Options // "-normalmap -highprec "
	}
*/
package udimgen
