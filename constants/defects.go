package constants

// DefectKeys is the reference list of short defect keys. The extraction
// schema constrains the "defect" field to exactly these values.
var DefectKeys = []string{
	"ventilation_system_malfunction", "ventilation_project_mismatch", "ventilation_wall_ceiling_gap", "ventilation_surface_defects",
	"heating_pipes_joint_overlap", "heating_pipes_surface_defects", "heating_pipes_sewerage", "heating_pipes_gaps",
	"heating_pipes_fire_protection", "heating_pipes_water_supply", "heating_pipes_cold_supply",
	"wallpaper_paint_uniformity", "wallpaper_surface_chalking", "wallpaper_surface_defects",
	"window_mounting_seam_mismatch", "window_trim_cracks_gaps", "window_adjustment_missing", "window_glazing_beads_missing",
	"window_trim_incorrect_mounting", "window_hardware_missing",
	"interior_door_adjustment_missing", "interior_door_surface_defects", "interior_door_hardware_adjustment",
	"balcony_tile_steps_chips", "balcony_paint_drips_stains", "balcony_tile_grout_issues",
	"wallpaper_joints", "wallpaper_peeling", "wallpaper_gluing_surface_defects", "wallpaper_glue_stains", "wallpaper_overlap",
	"entrance_door_reinstall_needed", "entrance_door_adjustment_missing", "entrance_door_trim_missing",
	"entrance_door_hardware_damage", "entrance_door_cleanliness", "entrance_door_surface_defects",
	"entrance_door_opening_filling", "entrance_door_locking_devices",
	"baseboards_surface_defects", "threshold_steps", "baseboards_floor_gaps", "baseboards_connecting_elements",
	"baseboards_joint_overlap", "baseboards_insufficient_fasteners",
	"bath_screen_not_fixed",
	"ceiling_paint_uniformity", "ceiling_surface_defects",
	"inspection_hatch_door_adjustment", "inspection_hatch_vertical_deviation", "inspection_hatch_surface_defects", "inspection_hatch_wall_gap",
	"floor_tile_voids", "floor_tile_layout_mismatch", "floor_tile_grout", "floor_tile_unevenness",
	"floor_tile_joint_displacement", "floor_tile_cracks_chips", "floor_tile_joint_placement", "floor_tile_steps",
	"floor_tile_joint_width", "floor_level_deviation",
	"stretch_ceiling_embedded_parts", "stretch_ceiling_contamination", "stretch_ceiling_baseboard_gap",
	"stretch_ceiling_pipe_gap", "stretch_ceiling_sagging",
	"plumbing_leaks_malfunction", "plumbing_joint_sealing", "plumbing_surface_defects", "plumbing_mounting",
	"plumbing_mechanical_damage", "plumbing_decorative_covers",
	"wet_cleaning",
	"door_trim_connection_gaps", "door_trim_mounting", "door_trim_wall_gaps", "door_trim_surface_defects",
	"heating_pipes_paint_defects",
	"laminate_chips_scratches", "laminate_board_gaps", "laminate_ruler_gap", "laminate_steps",
	"laminate_floor_level_deviation", "laminate_wall_gap_missing",
	"window_slopes_paint_uniformity", "window_slopes_surface_defects",
	"wall_tile_joint_displacement", "wall_tile_glue_residue", "wall_tile_layout_mismatch", "wall_tile_unevenness",
	"wall_tile_grout", "wall_tile_steps", "wall_tile_voids", "wall_tile_hole_shapes", "wall_tile_cracks_chips", "wall_tile_joint_width",
}

var defectKeySet = func() map[string]struct{} {
	s := make(map[string]struct{}, len(DefectKeys))
	for _, k := range DefectKeys {
		s[k] = struct{}{}
	}
	return s
}()

func IsDefectKey(s string) bool {
	_, ok := defectKeySet[s]
	return ok
}
